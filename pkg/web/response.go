// Package web defines the structured responses handed to the presentation layer.
package web

import "github.com/go-playground/validator/v10"

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	Data  any       `json:"data,omitempty"`
	Error JSONError `json:"error,omitempty"`
}

// GetErrorMsg translates a failed binding validation into a readable
// message fragment appended to the field name.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param()
	case "gt":
		return " must be greater than " + fe.Param()
	case "gte":
		return " must be greater than or equal to " + fe.Param()
	default:
		return " is invalid"
	}
}

// Control describes one interactive control attached to a result. The
// platform connector renders it as a button and posts the CustomID back as a
// component signal when pressed.
type Control struct {
	CustomID string `json:"custom_id"`
	Label    string `json:"label"`
}

// Result is the outcome of one command or signal. The presentation layer
// renders it as it sees fit; Ephemeral marks balance-sensitive replies that
// must stay private to the invoking user.
type Result struct {
	Status     string    `json:"status"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	NewBalance *int64    `json:"new_balance,omitempty"`
	Amount     *int64    `json:"amount,omitempty"`
	Ephemeral  bool      `json:"ephemeral,omitempty"`
	Controls   []Control `json:"controls,omitempty"`
}

// Int64 returns a pointer to v for optional numeric result fields.
func Int64(v int64) *int64 {
	return &v
}
