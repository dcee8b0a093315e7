package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON_SuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, 200, envelope{"orders": []string{}})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "orders")
}

func TestRespondError_FailureEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, 403, "Not your order")

	assert.Equal(t, 403, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not your order", body["message"])
}
