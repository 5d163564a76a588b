package requestid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	ctx := With(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", From(ctx))
	assert.Empty(t, From(context.Background()))
}
