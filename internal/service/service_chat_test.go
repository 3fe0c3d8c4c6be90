package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fitcoach/internal/adapter"
	"fitcoach/internal/logger"
	"fitcoach/internal/mock"
	"fitcoach/internal/store"
	"fitcoach/models"
)

func newTestChatSvc(t *testing.T, ctrl *gomock.Controller) (ChatService, *mock.MockStore, *mock.MockChatClient) {
	t.Helper()
	mockStore := mock.NewMockStore(ctrl)
	mockClient := mock.NewMockChatClient(ctrl)
	svc := NewChatService(mockStore, mockClient, logger.NewLogger("test"))
	return svc, mockStore, mockClient
}

func TestChatService_Chat_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockClient := newTestChatSvc(t, ctrl)
	ctx := context.Background()

	history := []store.Record{
		{"id": "msg-1", "session_id": "sess-1", "user_id": "user-1",
			"message": "hello", "response": "hi", "timestamp": time.Now().UTC()},
	}

	var inserted store.Record
	gomock.InOrder(
		mockStore.EXPECT().FindAll(ctx, "chat_messages", store.Filter{"session_id": "sess-1"},
			gomock.Any(), gomock.Any()).
			Return(history, nil),
		mockClient.EXPECT().Complete(ctx, gomock.Len(1), "leg day ideas?").
			Return("Try squats and lunges.", nil),
		mockStore.EXPECT().InsertOne(ctx, "chat_messages", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, record store.Record) error {
				inserted = record
				return nil
			}),
	)

	exchange, err := svc.Chat(ctx, models.ChatRequest{
		SessionID: "sess-1",
		UserID:    "user-1",
		Message:   "leg day ideas?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Try squats and lunges.", exchange.Response)
	assert.Equal(t, "sess-1", exchange.SessionID)
	assert.NotEmpty(t, exchange.ID)

	assert.Equal(t, "leg day ideas?", inserted["message"])
	assert.Equal(t, "Try squats and lunges.", inserted["response"])
}

func TestChatService_Chat_UpstreamFailureNotPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockClient := newTestChatSvc(t, ctrl)
	ctx := context.Background()

	// no InsertOne expectation: a failed exchange must not be stored
	gomock.InOrder(
		mockStore.EXPECT().FindAll(ctx, "chat_messages", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil),
		mockClient.EXPECT().Complete(ctx, gomock.Any(), gomock.Any()).
			Return("", adapter.ErrUpstreamRateLimited),
	)

	_, err := svc.Chat(ctx, models.ChatRequest{SessionID: "sess-1", UserID: "user-1", Message: "hi"})
	assert.ErrorIs(t, err, adapter.ErrUpstreamRateLimited)
}

func TestChatService_History_OldestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _ := newTestChatSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().FindAll(ctx, "chat_messages", store.Filter{"session_id": "sess-1"},
		gomock.Any(), gomock.Any()).
		Return([]store.Record{
			{"id": "msg-1", "message": "first"},
			{"id": "msg-2", "message": "second"},
		}, nil)

	messages, err := svc.History(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Message)
	assert.Equal(t, "second", messages[1].Message)
}

func TestChatService_History_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _ := newTestChatSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().FindAll(ctx, "chat_messages", gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]store.Record{}, nil)

	messages, err := svc.History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}
