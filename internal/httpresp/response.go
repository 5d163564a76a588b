package httpresp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// PageResponse is a slice of a larger result; Total counts every match.
type PageResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// PageParams reads ?page= and ?limit=, clamping both to sane values.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int { return (p.Page - 1) * p.Limit }

func ParsePage(c *gin.Context) PageParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return PageParams{Page: page, Limit: limit}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Page[T any](c *gin.Context, data []T, total int64, p PageParams) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, PageResponse[T]{
		Data:  data,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}
