package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fitcoach/internal/logger"
	"fitcoach/internal/mock"
	"fitcoach/internal/store"
	"fitcoach/models"
)

func TestStatusService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockStore(ctrl)
	svc := NewStatusService(mockStore, logger.NewLogger("test"))
	ctx := context.Background()

	var inserted store.Record
	mockStore.EXPECT().InsertOne(ctx, "status_checks", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, record store.Record) error {
			inserted = record
			return nil
		})

	check, err := svc.Create(ctx, models.StatusCheckCreate{ClientName: "mobile-app"})
	require.NoError(t, err)

	assert.NotEmpty(t, check.ID)
	assert.Equal(t, "mobile-app", check.ClientName)
	assert.False(t, check.Timestamp.IsZero())
	assert.Equal(t, check.ID, inserted["id"])
}

func TestStatusService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockStore(ctrl)
	svc := NewStatusService(mockStore, logger.NewLogger("test"))
	ctx := context.Background()

	mockStore.EXPECT().FindAll(ctx, "status_checks", store.Filter{}, gomock.Any()).
		Return([]store.Record{
			{"id": "status-1", "client_name": "mobile-app"},
			{"id": "status-2", "client_name": "web-app"},
		}, nil)

	checks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "mobile-app", checks[0].ClientName)
}
