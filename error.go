package elementmodel

import "fmt"

// ErrorKind classifies a structural error.
// Maps loosely to OperationOutcome.issue.code values in FHIR.
type ErrorKind string

const (
	// KindUnknownType indicates the runtime type of a node could not be
	// resolved to a mapping descriptor.
	KindUnknownType ErrorKind = "unknown-type"
	// KindUnknownMember indicates an element name that is not mapped by the
	// target descriptor.
	KindUnknownMember ErrorKind = "unknown-member"
	// KindRepeatedMember indicates a second occurrence of a non-repeating
	// element.
	KindRepeatedMember ErrorKind = "repeated-member"
	// KindInvalidLiteral indicates a literal value outside a closed
	// enumeration.
	KindInvalidLiteral ErrorKind = "invalid-literal"
	// KindTypeMismatch indicates content whose runtime type is not among
	// a property's acceptable types.
	KindTypeMismatch ErrorKind = "type-mismatch"
	// KindMalformed indicates wire data that could not be decoded into a
	// typed-node tree.
	KindMalformed ErrorKind = "malformed"
	// KindInternal indicates an instance that rejected storage of
	// materialized content, such as a target whose descriptor diverges
	// from the one the provider resolved.
	KindInternal ErrorKind = "internal"
)

// StructuralError is the single error kind raised for structural violations
// during materialization or decoding. It always carries a human-locatable
// path and is always fatal to the current call; a failed materialization's
// output must be treated as discarded.
type StructuralError struct {
	// Kind identifies the class of violation.
	Kind ErrorKind

	// Location is the path of the offending element
	// (e.g. "Patient.name[0].family").
	Location string

	// Message contains human-readable details.
	Message string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("structural error (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("structural error (%s) at %s: %s", e.Kind, e.Location, e.Message)
}

// NewStructuralError creates a StructuralError with a formatted message.
func NewStructuralError(kind ErrorKind, location, format string, args ...any) *StructuralError {
	return &StructuralError{
		Kind:     kind,
		Location: location,
		Message:  fmt.Sprintf(format, args...),
	}
}

// ArgumentError reports an incompatible argument supplied by the caller,
// such as a pre-existing target instance of the wrong shape. It is raised
// immediately, before any mutation of the target.
type ArgumentError struct {
	// Argument names the offending parameter.
	Argument string

	// Message contains human-readable details.
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Message)
}

// NewArgumentError creates an ArgumentError with a formatted message.
func NewArgumentError(argument, format string, args ...any) *ArgumentError {
	return &ArgumentError{
		Argument: argument,
		Message:  fmt.Sprintf(format, args...),
	}
}
