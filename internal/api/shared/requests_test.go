package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string `json:"title" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"title":"x","count":1}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "unknown field", body: `{"title":"x","extra":true}`, wantErr: true},
		{name: "trailing object", body: `{"title":"x"}{"title":"y"}`, wantErr: true},
		{name: "wrong type", body: `{"title":5}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var got sampleRequest
			err := DecodeJSON(w, req, &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", got.Title)
		})
	}

	t.Run("empty body sentinel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var got sampleRequest
		assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), req, &got), ErrEmptyBody)
	})
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleRequest{Title: "x"}))
	assert.Error(t, ValidateRequest(&sampleRequest{}))
	assert.Error(t, ValidateRequest(&sampleRequest{Title: "x", Count: -1}))
}
