package session

import "errors"

// AuthFailure is returned by Login when the authority rejects the credentials or issues
// something unusable. Existing session state is never touched when it is returned.
type AuthFailure struct {
	Message string
	Status  int
	Payload map[string]any
	Err     error
}

func (e *AuthFailure) Error() string {
	return e.Message
}

func (e *AuthFailure) Unwrap() error {
	return e.Err
}

func asAuthFailure(err error) *AuthFailure {
	var failure *AuthFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &AuthFailure{Message: err.Error(), Err: err}
}
