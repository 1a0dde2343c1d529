package xamine

import "github.com/bluetech/libXamine/internal/diag"

// Diagnostic, Severity, and Category are re-exported from internal/diag for
// the public API, matching the teacher's pkg/types re-export of
// internal/repair's Severity/Diagnostic types: the taxonomy lives next to
// the low-level code that raises it, the friendly name lives at the
// package root.
type (
	Diagnostic = diag.Diagnostic
	Severity   = diag.Severity
	Category   = diag.Category
)

const (
	SevInfo    = diag.SevInfo
	SevWarning = diag.SevWarning
	SevError   = diag.SevError

	CategoryTruncation  = diag.CategoryTruncation
	CategorySchemaGap   = diag.CategorySchemaGap
	CategorySchemaError = diag.CategorySchemaError
	CategoryDocument    = diag.CategoryDocument
)

func newDiagnostic(sev Severity, cat Category, offset int, path, issue string, err error) *Diagnostic {
	return diag.New(sev, cat, offset, path, issue, err)
}
