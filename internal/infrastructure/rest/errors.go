package rest

import "fmt"

// APIError is the generic transport failure for every non-login call.
// It carries only the observed HTTP status; no body is retained.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

// CredentialError is the structured failure raised only by Login. The
// server's validation body is surfaced verbatim so callers can render
// field-level messages.
type CredentialError struct {
	Status         int      `json:"-"`
	Detail         string   `json:"detail"`
	Username       []string `json:"username"`
	Password       []string `json:"password"`
	NonFieldErrors []string `json:"non_field_errors"`
}

// Message extracts the most specific user-facing message. Preference
// order: detail, non_field_errors, username, password.
func (e *CredentialError) Message() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case len(e.NonFieldErrors) > 0:
		return e.NonFieldErrors[0]
	case len(e.Username) > 0:
		return e.Username[0]
	case len(e.Password) > 0:
		return e.Password[0]
	}
	return fmt.Sprintf("login failed: status %d", e.Status)
}

func (e *CredentialError) Error() string {
	return e.Message()
}
