package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account synced from the identity provider
type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OAuthProvider string    `json:"oauth_provider" gorm:"type:varchar(50);not null;uniqueIndex:idx_oauth_identity"`
	OAuthSubject  string    `json:"-" gorm:"column:oauth_subject;type:varchar(255);not null;uniqueIndex:idx_oauth_identity"`
	Email         string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName     *string   `json:"first_name,omitempty" gorm:"type:varchar(255)"`
	LastName      *string   `json:"last_name,omitempty" gorm:"type:varchar(255)"`
	AvatarURL     *string   `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewOAuthUser creates a user from an identity provider profile
func NewOAuthUser(provider, subject, email string) *User {
	now := time.Now()
	return &User{
		ID:            uuid.New(),
		OAuthProvider: provider,
		OAuthSubject:  subject,
		Email:         email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SyncProfile refreshes the mutable profile fields from the provider.
// Returns true when anything actually changed.
func (u *User) SyncProfile(email string, firstName, lastName, avatarURL *string) bool {
	changed := false
	if email != "" && email != u.Email {
		u.Email = email
		changed = true
	}
	if firstName != nil && !equalStrPtr(u.FirstName, firstName) {
		u.FirstName = firstName
		changed = true
	}
	if lastName != nil && !equalStrPtr(u.LastName, lastName) {
		u.LastName = lastName
		changed = true
	}
	if avatarURL != nil && !equalStrPtr(u.AvatarURL, avatarURL) {
		u.AvatarURL = avatarURL
		changed = true
	}
	return changed
}

// FullName joins the name parts, falling back to the email local part
func (u *User) FullName() string {
	first, last := "", ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return u.Email
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.OAuthProvider == "" || u.OAuthSubject == "" {
		return ErrInvalidOAuthIdentity
	}
	return nil
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
