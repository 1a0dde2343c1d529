package xamine

import "errors"

// Sentinel errors for the public API. Dissection-time problems are
// additionally carried as a *Diagnostic on the partial Item tree; these
// sentinels are what that Diagnostic's Err field wraps, and what
// NewContext and NewConversation return directly.
var (
	// ErrInvalidFlags indicates an unrecognized bit was set in a Flags value.
	ErrInvalidFlags = errors.New("xamine: invalid flags")

	// ErrTruncated indicates a buffer was shorter than a fixed structure
	// required to decode it.
	ErrTruncated = errors.New("xamine: truncated buffer")

	// ErrSchemaGap indicates a wire code had no registered Definition.
	ErrSchemaGap = errors.New("xamine: no definition registered for code")

	// ErrDivideByZero indicates an expression divided by a zero operand.
	ErrDivideByZero = errors.New("xamine: division by zero in length expression")

	// ErrShiftRange indicates a shift amount fell outside [0, 63].
	ErrShiftRange = errors.New("xamine: shift amount out of range")

	// ErrFieldRefKind indicates a field reference named a non-primitive sibling.
	ErrFieldRefKind = errors.New("xamine: field reference to non-primitive sibling")

	// ErrFieldRefMissing indicates a field reference named no sibling at all.
	ErrFieldRefMissing = errors.New("xamine: field reference to unknown sibling")

	// ErrTypedefCycle indicates a typedef's reference chain does not
	// terminate at a non-typedef.
	ErrTypedefCycle = errors.New("xamine: typedef reference cycle")

	// ErrUnresolvedType indicates a field definition's type reference was
	// never resolved against the registry.
	ErrUnresolvedType = errors.New("xamine: unresolved type reference")

	// ErrDuplicateName indicates two definitions were registered under the
	// same name; the first registration wins, this error is informational.
	ErrDuplicateName = errors.New("xamine: duplicate definition name")

	// ErrMissingAttribute indicates an XML element lacked an attribute its
	// tag requires; the element is skipped, not fatal to compilation.
	ErrMissingAttribute = errors.New("xamine: element missing required attribute")

	// ErrUnknownElement indicates an XML element's tag is not one the
	// compiler recognizes; it is ignored.
	ErrUnknownElement = errors.New("xamine: unrecognized schema element")
)
