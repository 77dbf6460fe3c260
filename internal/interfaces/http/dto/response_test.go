package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

		assert.True(t, resp.Success)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("exact multiple has no partial page", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 40, 1, 20)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 0, 1, 20)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 0, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Product not found")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("INTERNAL_ERROR", "boom", "req-123")

	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
