package test

import (
	"encoding/json"
	"testing"

	"campus-connect/internal/global/response"

	"github.com/stretchr/testify/require"
)

func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Message, resp.Msg)
}

// CodeEqual only checks the business code, for errors whose message carries
// request-specific detail.
func CodeEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	require.Equal(t, int32(200), resp.Code)
}

func CreatedOK(t *testing.T, resp response.ResponseBody) {
	require.Equal(t, int32(201), resp.Code)
}

// DecodeData unmarshals the envelope's data payload into dest.
func DecodeData(t *testing.T, resp response.ResponseBody, dest any) {
	require.NotEmpty(t, resp.Data)
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}
