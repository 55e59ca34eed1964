package domain

// ValidationError reports invalid input per field. It is rendered as 422
// with the field messages under "errors".
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string { return e.Message }

// NewFieldError builds a ValidationError with a single field message.
func NewFieldError(message, field, reason string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string][]string{field: {reason}}}
}

// Add appends reason to the messages of field.
func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], reason)
}
