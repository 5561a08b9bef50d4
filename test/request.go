package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-connect/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// DoRequest drives a handler with a JSON body and decodes the envelope.
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(requestBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// DoAuthedRequest is DoRequest with a JWT payload preloaded into the
// context, mimicking the auth middleware.
func DoAuthedRequest(t *testing.T, handlerFunc gin.HandlerFunc, payload any, request any) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(requestBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("payload", payload)
	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}
