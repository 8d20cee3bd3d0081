package validator

// Validator validates a struct against its tags.
type Validator interface {
	Validate(data any) error
}
