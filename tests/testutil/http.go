package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/receipts/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest builds a request with a JSON body. A string body is sent
// verbatim so tests can post malformed documents.
func NewJSONRequest(method, path string, body any) *http.Request {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Serve runs req through h and records the response.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// PerformRequest builds a JSON request and serves it.
func PerformRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	return Serve(h, NewJSONRequest(method, path, body))
}

// DecodeResponse unmarshals the response envelope and, when data is not nil,
// its data field into data.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder, data any) dto.Response {
	t.Helper()
	var envelope struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "Failed to parse response envelope")
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data), "Failed to parse response data")
	}
	return envelope.Response
}

// RequireSuccess decodes a successful envelope into data.
func RequireSuccess(t *testing.T, w *httptest.ResponseRecorder, data any) {
	t.Helper()
	resp := DecodeResponse(t, w, data)
	require.True(t, resp.Success, w.Body.String())
}

// RequireErrorCode asserts the response carries an error with code.
func RequireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) *dto.ErrorInfo {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	resp := DecodeResponse(t, w, nil)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error, "Expected error object in response")
	require.Equal(t, code, resp.Error.Code)
	return resp.Error
}

// SessionCookie returns the named cookie set by the response, if any.
func SessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	return nil
}
