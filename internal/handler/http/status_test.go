package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fitcoach/models"
)

func TestRoot_HelloWorld(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	rec := httptest.NewRecorder()

	h.root(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello World")
}

func TestCreateStatusCheck_Success(t *testing.T) {
	h, mocks := newTestHandler(t)

	payload := models.StatusCheckCreate{ClientName: "ios-app"}
	mocks.status.EXPECT().
		Create(gomock.Any(), payload).
		Return(models.StatusCheck{
			ID:         "check-1",
			ClientName: "ios-app",
			Timestamp:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(jsonBody(t, payload)))
	rec := httptest.NewRecorder()

	h.createStatusCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.StatusCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "check-1", got.ID)
	assert.Equal(t, "ios-app", got.ClientName)
}

func TestCreateStatusCheck_MissingClientName(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.createStatusCheck(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")
}

func TestListStatusChecks_ReturnsRecords(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.status.EXPECT().
		List(gomock.Any()).
		Return([]models.StatusCheck{
			{ID: "check-1", ClientName: "ios-app"},
			{ID: "check-2", ClientName: "web-app"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()

	h.listStatusChecks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.StatusCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "web-app", got[1].ClientName)
}

func TestListStatusChecks_Empty(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.status.EXPECT().
		List(gomock.Any()).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()

	h.listStatusChecks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
