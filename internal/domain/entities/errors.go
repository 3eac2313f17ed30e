package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidOAuthIdentity = errors.New("invalid oauth identity")

	// OAuth errors
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrOAuthCodeInvalid   = errors.New("oauth code invalid")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")

	// Meeting / task / file errors
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidTitle      = errors.New("invalid title")
	ErrInvalidDate       = errors.New("invalid date")
	ErrMissingOwner      = errors.New("missing owner")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidConfidence = errors.New("invalid confidence")
	ErrInvalidObjectKey  = errors.New("invalid object key")
	ErrInvalidFileType   = errors.New("invalid file type")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)
