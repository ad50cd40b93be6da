package patient

import "errors"

var (
	// ErrNotFound is returned by repositories when no record has the CPF.
	ErrNotFound = errors.New("patient not found")
	// ErrDuplicate is returned by Create when the CPF is already registered.
	ErrDuplicate = errors.New("patient already exists")
)

// Field names used in ValidationError, matching the form inputs.
const (
	FieldCPF  = "cpf"
	FieldName = "nome"
	FieldAge  = "idade"
	FieldDate = "diaMarcado"
	FieldTime = "horaMarcada"
)

// ValidationError describes the first form field that failed validation.
// Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// StoreError wraps a repository failure. Message is the generic text shown
// to the user; Err holds the underlying cause and is only ever logged.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
