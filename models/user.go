package models

import "time"

// User represents an account entity used for authentication.
// PasswordHash holds an argon2id-encoded hash and must never be exposed
// outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, generated at creation.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier, stored case-sensitive.
	Email string `json:"email"`

	// PasswordHash is the argon2id-encoded hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the collection/table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ToMap converts the user to the generic record form used by the storage
// layer.
func (u User) ToMap() map[string]any {
	return map[string]any{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"created_at":    u.CreatedAt,
	}
}

// UserFromMap rebuilds a User from a storage record.
func UserFromMap(m map[string]any) User {
	return User{
		ID:           stringField(m, "id"),
		Name:         stringField(m, "name"),
		Email:        stringField(m, "email"),
		PasswordHash: stringField(m, "password_hash"),
		CreatedAt:    timeField(m, "created_at"),
	}
}
