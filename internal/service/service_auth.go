package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matthewhartstonge/argon2"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
	"fitcoach/internal/mailer"
	"fitcoach/internal/store"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

// authService is the concrete implementation of [AuthService]. Passwords
// are hashed with argon2id; reset tokens are opaque random values that are
// claimed with a conditional update, so a token can redeem at most once
// even under concurrent requests.
type authService struct {
	// store is the backend-agnostic persistence layer.
	store store.Store

	// mailer delivers reset links out-of-band when SMTP is configured.
	mailer mailer.Sender

	// argon holds the argon2id hashing parameters, fixed at construction.
	argon argon2.Config

	// cfg carries the reset-token TTL, reset-link settings and password
	// policy.
	cfg config.App

	// now is the clock, replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given store and
// mailer.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(st store.Store, sender mailer.Sender, cfg config.App, log *logger.Logger) AuthService {
	return &authService{
		store:  st,
		mailer: sender,
		argon:  argon2.DefaultConfig(),
		cfg:    cfg,
		now:    time.Now,
		logger: log,
	}
}

// Register creates a new user account.
//
// The e-mail is checked for an existing account before the insert, and the
// insert itself reports [ErrEmailAlreadyRegistered] on a uniqueness
// conflict, so concurrent registrations of the same e-mail cannot both
// succeed.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if len(req.Password) < a.cfg.MinPasswordLength {
		return models.User{}, ErrWeakPassword
	}

	_, err := a.store.FindOne(ctx, models.User{}.TableName(), store.Filter{"email": req.Email})
	switch {
	case err == nil:
		return models.User{}, ErrEmailAlreadyRegistered
	case !errors.Is(err, store.ErrNotFound):
		log.Err(err).Str("email", req.Email).Msg("user lookup failed during registration")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	encoded, err := a.argon.HashEncoded([]byte(req.Password))
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:           utils.UUIDGenerator(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(encoded),
		CreatedAt:    a.now().UTC(),
	}

	if err = a.store.InsertOne(ctx, user.TableName(), user.ToMap()); err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return models.User{}, ErrEmailAlreadyRegistered
		}
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login authenticates an existing user. Unknown e-mails and wrong
// passwords both return [ErrInvalidCredentials].
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	record, err := a.store.FindOne(ctx, models.User{}.TableName(), store.Filter{"email": req.Email})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", req.Email).Msg("user lookup failed during login")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	user := models.UserFromMap(record)

	ok, err := argon2.VerifyEncoded([]byte(req.Password), []byte(user.PasswordHash))
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("stored password hash could not be verified")
		return models.User{}, ErrInvalidCredentials
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// RequestPasswordReset issues a reset token for the account behind the
// e-mail. Unknown e-mails succeed silently with an empty link, so the
// endpoint never reveals whether an account exists.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	record, err := a.store.FindOne(ctx, models.User{}.TableName(), store.Filter{"email": email})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		log.Err(err).Str("email", email).Msg("user lookup failed during reset request")
		return "", fmt.Errorf("user lookup failed: %w", err)
	}
	user := models.UserFromMap(record)

	secret, err := utils.NewResetToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return "", fmt.Errorf("reset token generation failed: %w", err)
	}

	token := models.PasswordResetToken{
		ID:        utils.UUIDGenerator(),
		UserID:    user.ID,
		Token:     secret,
		ExpiresAt: a.now().UTC().Add(a.cfg.ResetTokenTTL),
		Used:      false,
		CreatedAt: a.now().UTC(),
	}

	if err = a.store.InsertOne(ctx, token.TableName(), token.ToMap()); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("reset token persistence failed")
		return "", fmt.Errorf("reset token persistence failed: %w", err)
	}

	resetLink := a.cfg.ResetURLBase + "?token=" + secret

	if a.mailer != nil && a.mailer.Enabled() {
		// delivery failure must not reveal anything to the caller
		if err = a.mailer.SendResetLink(user.Email, user.Name, resetLink); err != nil {
			log.Err(err).Str("user_id", user.ID).Msg("reset e-mail delivery failed")
		}
	}

	if a.cfg.ResetLinkMode == config.ResetLinkModeDemo {
		return resetLink, nil
	}

	return "", nil
}

// ValidateResetToken checks redeemability without consuming the token.
func (a *authService) ValidateResetToken(ctx context.Context, tokenValue string) error {
	log := logger.FromContext(ctx)

	record, err := a.store.FindOne(ctx, models.PasswordResetToken{}.TableName(), store.Filter{"token": tokenValue})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		log.Err(err).Msg("reset token lookup failed")
		return fmt.Errorf("reset token lookup failed: %w", err)
	}

	if !models.PasswordResetTokenFromMap(record).IsValid(a.now().UTC()) {
		return ErrInvalidOrExpiredToken
	}

	return nil
}

// ResetPassword redeems a token and writes the new password.
//
// The token is claimed first with a conditional update on used=false; only
// the caller whose update affects a record proceeds to the password write.
// Losing the claim race, a used token and an expired token are all
// reported as [ErrInvalidOrExpiredToken].
func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(req.NewPassword) < a.cfg.MinPasswordLength {
		return ErrWeakPassword
	}

	tokenTable := models.PasswordResetToken{}.TableName()

	record, err := a.store.FindOne(ctx, tokenTable, store.Filter{"token": req.Token})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		log.Err(err).Msg("reset token lookup failed")
		return fmt.Errorf("reset token lookup failed: %w", err)
	}

	token := models.PasswordResetTokenFromMap(record)
	if !token.IsValid(a.now().UTC()) {
		return ErrInvalidOrExpiredToken
	}

	affected, err := a.store.UpdateOne(ctx, tokenTable,
		store.Filter{"token": req.Token, "used": false},
		store.Record{"used": true})
	if err != nil {
		log.Err(err).Msg("reset token claim failed")
		return fmt.Errorf("reset token claim failed: %w", err)
	}
	if affected == 0 {
		// another request redeemed the token first
		return ErrInvalidOrExpiredToken
	}

	encoded, err := a.argon.HashEncoded([]byte(req.NewPassword))
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	affected, err = a.store.UpdateOne(ctx, models.User{}.TableName(),
		store.Filter{"id": token.UserID},
		store.Record{"password_hash": string(encoded)})
	if err != nil {
		log.Err(err).Str("user_id", token.UserID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}
	if affected == 0 {
		log.Error().Str("user_id", token.UserID).Msg("password update matched no user")
		return fmt.Errorf("password update matched no user")
	}

	return nil
}
