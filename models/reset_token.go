package models

import "time"

// PasswordResetToken is a single-use, time-limited credential that allows a
// user to change their password without knowing the current one.
//
// A token is valid iff Used is false and the current time is before
// ExpiresAt. Redemption is terminal: tokens are never deleted, only marked
// used, so the table doubles as an audit trail.
type PasswordResetToken struct {
	// ID is the unique identifier of the token record.
	ID string `json:"id"`

	// UserID references the owning User.
	UserID string `json:"user_id"`

	// Token is the unguessable URL-safe secret generated server-side.
	Token string `json:"-"`

	// ExpiresAt is the moment the token stops being redeemable.
	ExpiresAt time.Time `json:"expires_at"`

	// Used marks a redeemed token. No path returns a used token to valid.
	Used bool `json:"used"`

	// CreatedAt is the issuance timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the collection/table
// associated with the PasswordResetToken model.
func (t PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// IsValid reports whether the token can still be redeemed at the given
// instant.
func (t PasswordResetToken) IsValid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// ToMap converts the token to the generic record form used by the storage
// layer.
func (t PasswordResetToken) ToMap() map[string]any {
	return map[string]any{
		"id":         t.ID,
		"user_id":    t.UserID,
		"token":      t.Token,
		"expires_at": t.ExpiresAt,
		"used":       t.Used,
		"created_at": t.CreatedAt,
	}
}

// PasswordResetTokenFromMap rebuilds a PasswordResetToken from a storage
// record.
func PasswordResetTokenFromMap(m map[string]any) PasswordResetToken {
	return PasswordResetToken{
		ID:        stringField(m, "id"),
		UserID:    stringField(m, "user_id"),
		Token:     stringField(m, "token"),
		ExpiresAt: timeField(m, "expires_at"),
		Used:      boolField(m, "used"),
		CreatedAt: timeField(m, "created_at"),
	}
}
