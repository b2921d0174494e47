package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidSignup = errors.New("invalid signup data")

// Credential verification failures, shared by the REST auth middleware and
// the websocket connection gate. Anything else coming out of the verifier is
// treated as an internal fault and rejected the same way.
var ErrMissingCredential = errors.New("no credential provided")
var ErrInvalidCredential = errors.New("invalid credential")
var ErrIdentityNotFound = errors.New("identity not found")

// User models a registered chat participant.
type User struct {
	ID           string    `json:"_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfilePic   string    `json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
