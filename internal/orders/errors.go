package orders

import "errors"

var (
	ErrUnknownItem       = errors.New("unknown menu item")
	ErrAlreadyCaptured   = errors.New("payment already captured for this cart")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// ValidationError reports a malformed or policy-violating order. It is shown to the
// submitter as-is.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
