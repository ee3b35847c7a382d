package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Name string `json:"name"`
}

func (r testRequest) Validate() []string {
	if r.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestDecodeAndValidate_OK(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))

	var req testRequest
	require.True(t, DecodeAndValidate(rec, r, &req))
	require.Equal(t, "x", req.Name)
}

func TestDecodeAndValidate_MalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	var req testRequest
	require.False(t, DecodeAndValidate(rec, r, &req))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.Equal(t, ErrCodeBadRequest, resp.Error.Code)
}

func TestDecodeAndValidate_UnknownField(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","bogus":1}`))

	var req testRequest
	require.False(t, DecodeAndValidate(rec, r, &req))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeAndValidate_ValidatorFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	var req testRequest
	require.False(t, DecodeAndValidate(rec, r, &req))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.Equal(t, ErrCodeBadRequest, resp.Error.Code)
	require.Contains(t, resp.Error.Message, "name is required")
}
