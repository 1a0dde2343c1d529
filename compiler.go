package xamine

import (
	"strconv"
)

// Compile walks one schema document's element tree and appends the
// definitions, events, and errors it declares into ctx. It never aborts: a
// malformed element (missing a required attribute, an unparseable number) is
// logged and skipped, and compilation continues with the next element.
// Compile returns the diagnostics raised for root-level elements. A field
// skipped inside a struct or event body is logged only and does not appear
// in the result, so an empty result means every root-level element was
// accepted.
func Compile(ctx *Context, doc *Element) []*Diagnostic {
	if doc == nil {
		return []*Diagnostic{newDiagnostic(SevError, CategoryDocument, 0, "", "nil document", ErrMissingAttribute)}
	}

	var ext *Extension
	if xname, ok := doc.Attr("extension-xname"); ok && xname != "" {
		name, _ := doc.Attr("extension-name")
		ext = ctx.extensionByShortName(name, xname, true)
	}

	var diags []*Diagnostic
	for _, elem := range doc.Children {
		if d := compileElement(ctx, ext, elem); d != nil {
			diags = append(diags, d)
		}
	}
	return diags
}

// compileElement dispatches a single root-level schema element by tag.
func compileElement(ctx *Context, ext *Extension, elem *Element) *Diagnostic {
	switch elem.Tag {
	case "struct":
		return compileStruct(ctx, ext, elem)
	case "xidtype":
		return compileXIDType(ctx, ext, elem)
	case "typedef":
		return compileTypedef(ctx, ext, elem)
	case "eventcopy":
		return compileEventCopy(ctx, ext, elem)
	case "event":
		return compileEvent(ctx, ext, elem)
	case "errorcopy", "error", "union", "enum", "import", "request":
		// Recognized, not yet dissectable; the compiler accepts and ignores
		// their declared content.
		return nil
	default:
		return warn(ctx, CategoryDocument, elem.Tag, "unrecognized schema element", ErrUnknownElement)
	}
}

// warn logs issue via ctx's logger and returns the matching Diagnostic.
func warn(ctx *Context, cat Category, path, issue string, err error) *Diagnostic {
	ctx.logger.Warn("schema compile warning", "path", path, "issue", issue, "error", err)
	return newDiagnostic(SevWarning, cat, 0, path, issue, err)
}

// qualifyName prefixes name with ext's short name, the same way every
// extension-defined type, event, and error is named in the registry.
func qualifyName(ext *Extension, name string) string {
	if ext == nil {
		return name
	}
	return ext.ShortName + ":" + name
}

// extShortName returns ext's short name, or "" for the core schema, for use
// against Registry.LookupQualified.
func extShortName(ext *Extension) string {
	if ext == nil {
		return ""
	}
	return ext.ShortName
}

func compileStruct(ctx *Context, ext *Extension, elem *Element) *Diagnostic {
	name, ok := elem.Attr("name")
	if !ok {
		return warn(ctx, CategoryDocument, "struct", "missing name attribute", ErrMissingAttribute)
	}
	fields := parseFields(ctx, ext, elem)
	qualified := qualifyName(ext, name)
	def := &Struct{DefName: qualified, Fields: fields}
	if !ctx.registry.Register(qualified, def) {
		return warn(ctx, CategoryDocument, qualified, "duplicate definition name", ErrDuplicateName)
	}
	return nil
}

func compileXIDType(ctx *Context, ext *Extension, elem *Element) *Diagnostic {
	name, ok := elem.Attr("name")
	if !ok {
		return warn(ctx, CategoryDocument, "xidtype", "missing name attribute", ErrMissingAttribute)
	}
	qualified := qualifyName(ext, name)
	def := &Primitive{DefName: qualified, Class: ClassUnsigned, Bytes: 4}
	if !ctx.registry.Register(qualified, def) {
		return warn(ctx, CategoryDocument, qualified, "duplicate definition name", ErrDuplicateName)
	}
	return nil
}

func compileTypedef(ctx *Context, ext *Extension, elem *Element) *Diagnostic {
	newname, ok1 := elem.Attr("newname")
	oldname, ok2 := elem.Attr("oldname")
	if !ok1 || !ok2 {
		return warn(ctx, CategoryDocument, "typedef", "missing newname or oldname attribute", ErrMissingAttribute)
	}
	target, _ := ctx.registry.LookupQualified(extShortName(ext), oldname)
	qualified := qualifyName(ext, newname)
	def := &Typedef{DefName: qualified, TargetName: oldname, Target: target}
	if !ctx.registry.Register(qualified, def) {
		return warn(ctx, CategoryDocument, qualified, "duplicate definition name", ErrDuplicateName)
	}
	return nil
}

// compileEventCopy registers a Typedef aliasing ref, additionally assigning
// it the given event number the same way a synthesized <event> is assigned
// one.
func compileEventCopy(ctx *Context, ext *Extension, elem *Element) *Diagnostic {
	name, ok1 := elem.Attr("name")
	ref, ok2 := elem.Attr("ref")
	numberStr, ok3 := elem.Attr("number")
	if !ok1 || !ok2 || !ok3 {
		return warn(ctx, CategoryDocument, "eventcopy", "missing name, ref, or number attribute", ErrMissingAttribute)
	}
	number, err := strconv.Atoi(numberStr)
	if err != nil {
		return warn(ctx, CategoryDocument, "eventcopy", "non-numeric number attribute", err)
	}
	if number > coreEventMax {
		// Extension opcode space; recorded by Conversation.RegisterExtension
		// at runtime, not here.
		return nil
	}

	target, _ := ctx.registry.LookupQualified(extShortName(ext), ref)
	qualified := qualifyName(ext, name)
	def := &Typedef{DefName: qualified, TargetName: ref, Target: target}
	if !ctx.registry.Register(qualified, def) {
		return warn(ctx, CategoryDocument, qualified, "duplicate definition name", ErrDuplicateName)
	}

	if ext != nil {
		ext.addEvent(def)
	} else if number >= 0 {
		ctx.coreEvents[number] = def
	}
	return nil
}

// compileEvent builds a Struct synthesizing response_type (and, unless
// no-sequence-number="true", sequence) ahead of the declared fields, then
// registers it under the event's qualified name and number.
func compileEvent(ctx *Context, ext *Extension, elem *Element) *Diagnostic {
	name, ok1 := elem.Attr("name")
	numberStr, ok2 := elem.Attr("number")
	if !ok1 || !ok2 {
		return warn(ctx, CategoryDocument, "event", "missing name or number attribute", ErrMissingAttribute)
	}
	number, err := strconv.Atoi(numberStr)
	if err != nil {
		return warn(ctx, CategoryDocument, "event", "non-numeric number attribute", err)
	}
	if number > coreEventMax {
		return nil
	}

	declared := parseFields(ctx, ext, elem)
	if len(declared) == 0 {
		cardDef, _ := ctx.registry.Lookup("CARD8")
		declared = []FieldDef{{FieldName: "pad", Def: cardDef}}
	}

	byteDef, _ := ctx.registry.Lookup("BYTE")
	fields := []FieldDef{{FieldName: "response_type", Def: byteDef}}
	if noSeq, _ := elem.Attr("no-sequence-number"); noSeq != "true" {
		card16Def, _ := ctx.registry.Lookup("CARD16")
		fields = append(fields, FieldDef{FieldName: "sequence", Def: card16Def})
	}
	fields = append(fields, declared...)

	qualified := qualifyName(ext, name)
	def := &Struct{DefName: qualified, Fields: fields}
	if !ctx.registry.Register(qualified, def) {
		return warn(ctx, CategoryDocument, qualified, "duplicate definition name", ErrDuplicateName)
	}

	if ext != nil {
		ext.addEvent(def)
	} else if number >= 0 {
		ctx.coreEvents[number] = def
	}
	return nil
}

// parseFields builds the field list of a struct or event body. <doc>
// children are skipped. <pad bytes="N"/> becomes a field named "pad", typed
// CARD8, with a literal length of N (a list of N bytes). Every other
// element is read as a field (name/type attributes); a <list> additionally
// parses a length Expression from its first child element.
func parseFields(ctx *Context, ext *Extension, elem *Element) []FieldDef {
	var fields []FieldDef
	for _, child := range elem.Children {
		if child.Tag == "doc" {
			continue
		}
		if child.Tag == "pad" {
			bytesStr, ok := child.Attr("bytes")
			if !ok {
				warn(ctx, CategoryDocument, "pad", "missing bytes attribute", ErrMissingAttribute)
				continue
			}
			n, err := strconv.Atoi(bytesStr)
			if err != nil {
				warn(ctx, CategoryDocument, "pad", "non-numeric bytes attribute", err)
				continue
			}
			cardDef, _ := ctx.registry.Lookup("CARD8")
			fields = append(fields, FieldDef{FieldName: "pad", Def: cardDef, Length: ExprLiteral{Value: uint64(n)}})
			continue
		}

		name, ok1 := child.Attr("name")
		typeName, ok2 := child.Attr("type")
		if !ok1 || !ok2 {
			warn(ctx, CategoryDocument, child.Tag, "missing name or type attribute", ErrMissingAttribute)
			continue
		}
		def, _ := ctx.registry.LookupQualified(extShortName(ext), typeName)
		fd := FieldDef{FieldName: name, Def: def}

		if child.Tag == "list" {
			if len(child.Children) == 0 {
				warn(ctx, CategoryDocument, name, "list element has no length expression", ErrMissingAttribute)
				continue
			}
			length, ok := parseExpression(child.Children[0])
			if !ok {
				warn(ctx, CategoryDocument, name, "unparseable list length expression", ErrUnknownElement)
				continue
			}
			fd.Length = length
		}
		fields = append(fields, fd)
	}
	return fields
}

// parseExpression builds an Expr from an element positioned at <op>,
// <value>, or <fieldref>.
func parseExpression(elem *Element) (Expr, bool) {
	switch elem.Tag {
	case "op":
		opStr, ok := elem.Attr("op")
		if !ok {
			return nil, false
		}
		op, ok := parseBinOp(opStr)
		if !ok {
			return nil, false
		}
		if len(elem.Children) < 2 {
			return nil, false
		}
		left, ok := parseExpression(elem.Children[0])
		if !ok {
			return nil, false
		}
		right, ok := parseExpression(elem.Children[1])
		if !ok {
			return nil, false
		}
		return ExprBinary{Op: op, Left: left, Right: right}, true

	case "value":
		v, err := strconv.ParseUint(elem.text(), 0, 64)
		if err != nil {
			return nil, false
		}
		return ExprLiteral{Value: v}, true

	case "fieldref":
		name := elem.text()
		if name == "" {
			return nil, false
		}
		return ExprFieldRef{FieldName: name}, true

	default:
		return nil, false
	}
}

func parseBinOp(s string) (BinOp, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	case "<<":
		return OpShiftLeft, true
	case "&":
		return OpBitAnd, true
	default:
		return 0, false
	}
}
