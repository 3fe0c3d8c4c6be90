package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matthewhartstonge/argon2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
	"fitcoach/internal/mock"
	"fitcoach/internal/store"
	"fitcoach/models"
)

func testAppConfig() config.App {
	return config.App{
		ResetTokenTTL:     time.Hour,
		ResetURLBase:      "http://localhost:3000/reset-password",
		ResetLinkMode:     config.ResetLinkModeDemo,
		MinPasswordLength: 6,
	}
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockStore) {
	t.Helper()
	mockStore := mock.NewMockStore(ctrl)
	svc := NewAuthService(mockStore, nil, testAppConfig(), logger.NewLogger("test")).(*authService)
	return svc, mockStore
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(password))
	require.NoError(t, err)
	return string(encoded)
}

// ── Register ────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	var inserted store.Record
	gomock.InOrder(
		mockStore.EXPECT().FindOne(ctx, "users", store.Filter{"email": "jane@example.com"}).
			Return(nil, store.ErrNotFound),
		mockStore.EXPECT().InsertOne(ctx, "users", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, record store.Record) error {
				inserted = record
				return nil
			}),
	)

	user, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)

	// stored hash is argon2id-encoded, never the raw password
	storedHash, _ := inserted["password_hash"].(string)
	assert.True(t, strings.HasPrefix(storedHash, "$argon2id$"), "got %q", storedHash)
	ok, err := argon2.VerifyEncoded([]byte("secret123"), []byte(storedHash))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().FindOne(ctx, "users", gomock.Any()).
		Return(store.Record{"id": "user-1", "email": "jane@example.com"}, nil)

	_, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuthService_Register_DuplicateEmailRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// the pre-check misses but the unique constraint still fires
	gomock.InOrder(
		mockStore.EXPECT().FindOne(ctx, "users", gomock.Any()).Return(nil, store.ErrNotFound),
		mockStore.EXPECT().InsertOne(ctx, "users", gomock.Any()).Return(store.ErrConstraintViolation),
	)

	_, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().FindOne(ctx, "users", store.Filter{"email": "jane@example.com"}).
		Return(store.Record{
			"id":            "user-1",
			"name":          "Jane",
			"email":         "jane@example.com",
			"password_hash": hashPassword(t, "secret123"),
		}, nil)

	user, err := svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Jane", user.Name)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().FindOne(ctx, "users", gomock.Any()).
		Return(store.Record{
			"id":            "user-1",
			"email":         "jane@example.com",
			"password_hash": hashPassword(t, "secret123"),
		}, nil)

	_, err := svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().FindOne(ctx, "users", gomock.Any()).Return(nil, store.ErrNotFound)

	_, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── RequestPasswordReset ────────────────────────────────────────────────────

func TestAuthService_RequestPasswordReset_DemoReturnsLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	var inserted store.Record
	gomock.InOrder(
		mockStore.EXPECT().FindOne(ctx, "users", store.Filter{"email": "jane@example.com"}).
			Return(store.Record{"id": "user-1", "name": "Jane", "email": "jane@example.com"}, nil),
		mockStore.EXPECT().InsertOne(ctx, "password_reset_tokens", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, record store.Record) error {
				inserted = record
				return nil
			}),
	)

	link, err := svc.RequestPasswordReset(ctx, "jane@example.com")
	require.NoError(t, err)

	secret, _ := inserted["token"].(string)
	assert.NotEmpty(t, secret)
	assert.Equal(t, "http://localhost:3000/reset-password?token="+secret, link)
	assert.Equal(t, "user-1", inserted["user_id"])
	assert.Equal(t, false, inserted["used"])

	expiresAt, _ := inserted["expires_at"].(time.Time)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, time.Minute)
}

func TestAuthService_RequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// no token insert happens for unknown e-mails
	mockStore.EXPECT().FindOne(ctx, "users", gomock.Any()).Return(nil, store.ErrNotFound)

	link, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestAuthService_RequestPasswordReset_EmailModeHidesLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockStore(ctrl)
	cfg := testAppConfig()
	cfg.ResetLinkMode = config.ResetLinkModeEmail
	svc := NewAuthService(mockStore, nil, cfg, logger.NewLogger("test")).(*authService)
	ctx := context.Background()

	gomock.InOrder(
		mockStore.EXPECT().FindOne(ctx, "users", gomock.Any()).
			Return(store.Record{"id": "user-1", "email": "jane@example.com"}, nil),
		mockStore.EXPECT().InsertOne(ctx, "password_reset_tokens", gomock.Any()).Return(nil),
	)

	link, err := svc.RequestPasswordReset(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Empty(t, link)
}

// ── ValidateResetToken ──────────────────────────────────────────────────────

func TestAuthService_ValidateResetToken(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		record  store.Record
		findErr error
		wantErr error
	}{
		{
			name: "valid",
			record: store.Record{
				"token": "tok", "used": false, "expires_at": now.Add(30 * time.Minute),
			},
		},
		{
			name: "expired",
			record: store.Record{
				"token": "tok", "used": false, "expires_at": now.Add(-time.Minute),
			},
			wantErr: ErrInvalidOrExpiredToken,
		},
		{
			name: "already used",
			record: store.Record{
				"token": "tok", "used": true, "expires_at": now.Add(30 * time.Minute),
			},
			wantErr: ErrInvalidOrExpiredToken,
		},
		{
			name:    "unknown",
			findErr: store.ErrNotFound,
			wantErr: ErrInvalidOrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockStore := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			mockStore.EXPECT().FindOne(ctx, "password_reset_tokens", store.Filter{"token": "tok"}).
				Return(tt.record, tt.findErr)

			err := svc.ValidateResetToken(ctx, "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ── ResetPassword ───────────────────────────────────────────────────────────

func validTokenRecord(now time.Time) store.Record {
	return store.Record{
		"id":         "token-1",
		"user_id":    "user-1",
		"token":      "tok",
		"expires_at": now.Add(30 * time.Minute),
		"used":       false,
		"created_at": now.Add(-time.Minute),
	}
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	now := time.Now().UTC()

	var newHash string
	gomock.InOrder(
		mockStore.EXPECT().FindOne(ctx, "password_reset_tokens", store.Filter{"token": "tok"}).
			Return(validTokenRecord(now), nil),
		// the claim happens before the password write
		mockStore.EXPECT().UpdateOne(ctx, "password_reset_tokens",
			store.Filter{"token": "tok", "used": false},
			store.Record{"used": true}).
			Return(int64(1), nil),
		mockStore.EXPECT().UpdateOne(ctx, "users",
			store.Filter{"id": "user-1"}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ store.Filter, update store.Record) (int64, error) {
				newHash, _ = update["password_hash"].(string)
				return 1, nil
			}),
	)

	err := svc.ResetPassword(ctx, models.ResetPasswordRequest{
		Token:           "tok",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	ok, err := argon2.VerifyEncoded([]byte("brand-new-pass"), []byte(newHash))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_ResetPassword_Mismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Token:           "tok",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "different-pass",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestAuthService_ResetPassword_WeakPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Token:           "tok",
		NewPassword:     "abc",
		ConfirmPassword: "abc",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_ResetPassword_LostClaimRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	now := time.Now().UTC()

	gomock.InOrder(
		mockStore.EXPECT().FindOne(ctx, "password_reset_tokens", gomock.Any()).
			Return(validTokenRecord(now), nil),
		// someone else claimed the token between lookup and claim
		mockStore.EXPECT().UpdateOne(ctx, "password_reset_tokens", gomock.Any(), gomock.Any()).
			Return(int64(0), nil),
	)

	err := svc.ResetPassword(ctx, models.ResetPasswordRequest{
		Token:           "tok",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	record := validTokenRecord(time.Now().UTC())
	record["expires_at"] = time.Now().UTC().Add(-time.Minute)

	mockStore.EXPECT().FindOne(ctx, "password_reset_tokens", gomock.Any()).Return(record, nil)

	err := svc.ResetPassword(ctx, models.ResetPasswordRequest{
		Token:           "tok",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

// ── concurrent redemption ───────────────────────────────────────────────────

// claimStore is an in-memory Store whose UpdateOne performs the filter
// check and the write under one lock, mimicking the conditional-update
// atomicity every real backend provides.
type claimStore struct {
	mu     sync.Mutex
	tokens map[string]store.Record
	users  map[string]store.Record
}

func newClaimStore(token, userID string, expiresAt time.Time) *claimStore {
	return &claimStore{
		tokens: map[string]store.Record{
			token: {
				"id": "token-1", "user_id": userID, "token": token,
				"expires_at": expiresAt, "used": false,
			},
		},
		users: map[string]store.Record{
			userID: {"id": userID, "email": "jane@example.com", "password_hash": "old"},
		},
	}
}

func (c *claimStore) InsertOne(context.Context, string, store.Record) error { return nil }

func (c *claimStore) FindOne(_ context.Context, table string, filter store.Filter) (store.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch table {
	case "password_reset_tokens":
		if record, ok := c.tokens[filter["token"].(string)]; ok {
			return copyRecord(record), nil
		}
	case "users":
		if record, ok := c.users[filter["id"].(string)]; ok {
			return copyRecord(record), nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *claimStore) FindAll(context.Context, string, store.Filter, ...store.FindOption) ([]store.Record, error) {
	return nil, nil
}

func (c *claimStore) UpdateOne(_ context.Context, table string, filter store.Filter, update store.Record) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch table {
	case "password_reset_tokens":
		record, ok := c.tokens[filter["token"].(string)]
		if !ok || record["used"] != filter["used"] {
			return 0, nil
		}
		for field, value := range update {
			record[field] = value
		}
		return 1, nil
	case "users":
		record, ok := c.users[filter["id"].(string)]
		if !ok {
			return 0, nil
		}
		for field, value := range update {
			record[field] = value
		}
		return 1, nil
	}
	return 0, nil
}

func (c *claimStore) DeleteOne(context.Context, string, store.Filter) (int64, error) { return 0, nil }
func (c *claimStore) Count(context.Context, string, store.Filter) (int64, error)     { return 0, nil }
func (c *claimStore) Ping(context.Context) error                                     { return nil }
func (c *claimStore) Close(context.Context) error                                    { return nil }

func copyRecord(record store.Record) store.Record {
	clone := make(store.Record, len(record))
	for field, value := range record {
		clone[field] = value
	}
	return clone
}

func TestAuthService_ResetPassword_ConcurrentRedemption(t *testing.T) {
	const workers = 16

	st := newClaimStore("tok", "user-1", time.Now().UTC().Add(time.Hour))
	svc := NewAuthService(st, nil, testAppConfig(), logger.NewLogger("test"))

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
				Token:           "tok",
				NewPassword:     "brand-new-pass",
				ConfirmPassword: "brand-new-pass",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrInvalidOrExpiredToken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one request may redeem the token")

	// the winner's password write landed
	hash, _ := st.users["user-1"]["password_hash"].(string)
	ok, err := argon2.VerifyEncoded([]byte("brand-new-pass"), []byte(hash))
	require.NoError(t, err)
	assert.True(t, ok)
}
