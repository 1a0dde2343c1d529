package xamine

// FieldDef is one entry inside a Struct or Union: a name, the Definition it
// decodes as, and an optional length Expression. A non-nil Length turns the
// field into a list of Def repeated N times, N evaluated against the
// enclosing record's already-decoded siblings at dissection time.
type FieldDef struct {
	FieldName string
	Def       Definition
	Length    Expr
}
