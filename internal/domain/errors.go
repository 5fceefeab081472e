package domain

import "errors"

var (
	// User / auth
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidInput       = errors.New("invalid input")

	// Profile
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrUsernameTaken        = errors.New("username already taken")

	// Interests
	ErrInterestNotFound        = errors.New("interest not found")
	ErrInterestAlreadyDeclared = errors.New("interest already declared")

	// Matching
	ErrInvalidMatchParams = errors.New("invalid match parameters")

	// Connections
	ErrConnectionNotFound    = errors.New("connection not found")
	ErrConnectionExists      = errors.New("connection already exists")
	ErrCannotConnectSelf     = errors.New("cannot connect to yourself")
	ErrNotConnectionReceiver = errors.New("only the receiver can respond to a connection request")
	ErrConnectionNotPending  = errors.New("connection is not pending")
	ErrConnectionNotAccepted = errors.New("connection is not accepted")

	// Messages
	ErrMessageNotFound    = errors.New("message not found")
	ErrNotMessageReceiver = errors.New("only the receiver can mark messages read")

	// Infrastructure
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsRetryable reports whether the caller may retry the failed operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
