package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSuccessResponseEnvelope(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	h.successResponse(rec, req, "领取成功", uint64(150))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "领取成功", resp.Message)
	assert.Equal(t, float64(150), resp.Data)
}

func TestDomainErrorCarriesSentinelMessage(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", nil)

	h.domainError(rec, req, vesting.ErrNotOwner)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, vesting.ErrNotOwner.Error(), resp.Message)
	assert.Nil(t, resp.Data)
}
