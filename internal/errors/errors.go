package errors

import (
	"errors"
	"net/http"

	"formhub/internal/captcha"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWrongPassword is returned when the caller's current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrEmailTaken is returned when an email is already registered to another user.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when a role id does not resolve.
	ErrRoleNotFound = errors.New("role not found")
	// ErrAlreadyHasRole is returned on a duplicate role attach attempt.
	ErrAlreadyHasRole = errors.New("user already has this role")
	// ErrLacksRole is returned when detaching a role the user does not hold.
	ErrLacksRole = errors.New("user does not have this role")
	// ErrFormNotFound is returned when a form id does not resolve.
	ErrFormNotFound = errors.New("form not found")
	// ErrSubmissionNotFound is returned when a submission id does not resolve.
	ErrSubmissionNotFound = errors.New("answer not found")
)

// ErrorResponse is the standardized error body: a message plus optional
// per-field violation lists.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// MapErrorToHTTP maps domain errors to a status code and response body.
// Unrecognized errors become a generic 500; callers log the detail, the
// client never sees it.
func MapErrorToHTTP(err error) (int, ErrorResponse) {
	var captchaErr *captcha.Error
	if errors.As(err, &captchaErr) {
		return http.StatusUnprocessableEntity, ErrorResponse{Message: captchaErr.Error()}
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"}
	case errors.Is(err, ErrWrongPassword):
		return http.StatusForbidden, ErrorResponse{Message: "Current password is incorrect"}
	case errors.Is(err, ErrEmailTaken):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Invalid data",
			Errors:  map[string][]string{"email": {"The email has already been taken."}},
		}
	case errors.Is(err, ErrRoleNotFound):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Invalid data",
			Errors:  map[string][]string{"role_id": {"The selected role_id is invalid."}},
		}
	case errors.Is(err, ErrAlreadyHasRole):
		return http.StatusBadRequest, ErrorResponse{Message: "User already has this role"}
	case errors.Is(err, ErrLacksRole):
		return http.StatusBadRequest, ErrorResponse{Message: "User does not have this role"}
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "User not found"}
	case errors.Is(err, ErrFormNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Form not found"}
	case errors.Is(err, ErrSubmissionNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Answer not found"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"}
	}
}
