package xamine

// DefinitionKind discriminates the variants of Definition.
type DefinitionKind int

const (
	KindPrimitive DefinitionKind = iota
	KindStruct
	KindUnion
	KindTypedef
)

func (k DefinitionKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindTypedef:
		return "typedef"
	default:
		return "unknown"
	}
}

// Definition is a named type in the registry. The concrete variants are
// *Primitive, *Struct, *Union, and *Typedef; callers switch on Kind (or a
// type switch) to reach the variant-specific fields, matching the
// discriminated-union shape the spec calls for.
type Definition interface {
	// Name returns the definition's registry name, qualified with its
	// extension's short name if it was registered by one.
	Name() string
	Kind() DefinitionKind
}

// Primitive is a fixed-size scalar: a boolean, character, or signed/unsigned
// integer of 1, 2, or 4 bytes.
type Primitive struct {
	DefName string
	Class   PrimitiveClass
	Bytes   int // 1, 2, or 4
}

func (p *Primitive) Name() string         { return p.DefName }
func (p *Primitive) Kind() DefinitionKind { return KindPrimitive }

// Struct is an ordered sequence of field definitions.
type Struct struct {
	DefName string
	Fields  []FieldDef
}

func (s *Struct) Name() string         { return s.DefName }
func (s *Struct) Kind() DefinitionKind { return KindStruct }

// Union is an ordered sequence of field definitions interpreted as
// overlaid storage. The framework recognizes and registers unions; no
// dissection semantics are implemented; see spec Non-goals.
type Union struct {
	DefName string
	Fields  []FieldDef
}

func (u *Union) Name() string         { return u.DefName }
func (u *Union) Kind() DefinitionKind { return KindUnion }

// Typedef is a transparent alias for another Definition. Target is nil
// until the referenced name resolves; dissecting through an unresolved
// Typedef is a schema error (ErrUnresolvedType), not a panic.
type Typedef struct {
	DefName    string
	TargetName string
	Target     Definition
}

func (t *Typedef) Name() string         { return t.DefName }
func (t *Typedef) Kind() DefinitionKind { return KindTypedef }

// resolveTypedef walks a typedef's reference chain to its ultimate
// non-typedef target, detecting cycles. It returns ErrTypedefCycle if the
// chain revisits a name, and ErrUnresolvedType if any link is nil.
func resolveTypedef(d Definition) (Definition, error) {
	seen := map[string]bool{}
	cur := d
	for {
		td, ok := cur.(*Typedef)
		if !ok {
			return cur, nil
		}
		if seen[td.DefName] {
			return nil, ErrTypedefCycle
		}
		seen[td.DefName] = true
		if td.Target == nil {
			return nil, ErrUnresolvedType
		}
		cur = td.Target
	}
}
