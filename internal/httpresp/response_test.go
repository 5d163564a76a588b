package httpresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func pageOf(query string) PageParams {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return ParsePage(c)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, PageParams{Page: 1, Limit: DefaultLimit}, pageOf(""))
	assert.Equal(t, PageParams{Page: 3, Limit: 20}, pageOf("page=3&limit=20"))
	assert.Equal(t, PageParams{Page: 1, Limit: DefaultLimit}, pageOf("page=-2&limit=999"))
	assert.Equal(t, 40, PageParams{Page: 3, Limit: 20}.Offset())
}

func TestListNeverNull(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	List[string](c, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, rec.Body.String())
}
