package domain

import "fmt"

// ErrorKind classifies why a signal was rejected.
type ErrorKind string

const (
	InvalidPercent       ErrorKind = "INVALID_PERCENT"
	MissingRequiredField ErrorKind = "MISSING_REQUIRED_FIELD"
	UnknownEnumValue     ErrorKind = "UNKNOWN_ENUM_VALUE"
	InvalidDecimal       ErrorKind = "INVALID_DECIMAL"
	MalformedInterchange ErrorKind = "MALFORMED_INTERCHANGE"
)

// ValidationError is returned by every construction and decoding path when a
// signal does not satisfy the contract. Field and Value are filled in when the
// failure concerns a single field. Callers match with errors.As and decide
// whether to retry, discard, or alert; nothing here is fatal.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("signal: %s: field %q, value %q", e.Kind, e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("signal: %s: field %q", e.Kind, e.Field)
	default:
		return fmt.Sprintf("signal: %s: %s", e.Kind, e.Value)
	}
}
