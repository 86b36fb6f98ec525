package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Run("Middle Page", func(t *testing.T) {
		meta := NewPagination(2, 10, 25)
		assert.Equal(t, 2, meta.CurrentPage)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Equal(t, int64(25), meta.TotalItems)
		assert.Equal(t, 10, meta.ItemsPerPage)
		assert.True(t, meta.HasNextPage)
		assert.True(t, meta.HasPreviousPage)
	})

	t.Run("Empty Set", func(t *testing.T) {
		meta := NewPagination(1, 10, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.Equal(t, int64(0), meta.TotalItems)
		assert.False(t, meta.HasNextPage)
		assert.False(t, meta.HasPreviousPage)
	})

	t.Run("Exact Fit", func(t *testing.T) {
		meta := NewPagination(3, 10, 30)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
		assert.True(t, meta.HasPreviousPage)
	})
}

func TestWriteSuccess(t *testing.T) {
	t.Run("With Data", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WriteSuccess(w, 200, []string{"a"}, "done", NewPagination(1, 10, 1)))

		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, []interface{}{"a"}, body["data"])
		assert.Equal(t, "done", body["message"])
		assert.NotNil(t, body["meta"])
	})

	t.Run("Null Data Is Explicit", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WriteSuccess(w, 200, nil, "game deleted", nil))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		_, hasData := body["data"]
		assert.True(t, hasData)
		assert.Nil(t, body["data"])
		_, hasMeta := body["meta"]
		assert.False(t, hasMeta)
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []FieldError{{Field: "rating", Message: "out of range"}}
	require.NoError(t, WriteError(w, 400, "validation failed", details))

	assert.Equal(t, 400, w.Code)

	var body struct {
		Success bool         `json:"success"`
		Error   string       `json:"error"`
		Details []FieldError `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation failed", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "rating", body.Details[0].Field)
}
