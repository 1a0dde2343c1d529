package xamine

import (
	"fmt"

	"github.com/bluetech/libXamine/internal/buf"
)

// minResponseSize is the fixed 32-byte frame size every X11 error, reply,
// and event shares (spec §4.E root selection, §6 wire format).
const minResponseSize = 32

// cursor tracks the read position into a dissected buffer. Unlike the
// three-field (pointer, remaining, offset) cursor the spec describes,
// offset and remaining are both derivable from pos against the original,
// never-resliced buffer, so a single index is sufficient here.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

// take returns the next n bytes and advances the cursor past them. ok is
// false, and the cursor is left unmoved, if fewer than n bytes remain.
func (c *cursor) take(n int) (b []byte, ok bool) {
	b, ok = buf.Slice(c.buf, c.pos, n)
	if !ok {
		return nil, false
	}
	c.pos += n
	return b, true
}

// Examine is the dissector's sole entry point: select a root Definition
// from conversation and direction, then recursively decode buffer against
// it. Returns (nil, nil) for the reserved request/reply paths, (nil, diag)
// when no root Definition could be selected at all, and otherwise a
// (possibly partial, on truncation or schema error) parse tree together
// with any diagnostic raised while building it.
func Examine(conversation *Conversation, direction Direction, buffer []byte) (*Item, *Diagnostic) {
	if conversation == nil || buffer == nil {
		return nil, newDiagnostic(SevError, CategorySchemaError, 0, "", "nil conversation or buffer", nil)
	}
	if direction != DirResponse {
		// Request dissection is reserved; spec §4.E.
		return nil, nil
	}
	if len(buffer) < minResponseSize {
		return nil, newDiagnostic(SevError, CategoryTruncation, 0, "",
			fmt.Sprintf("response frame shorter than %d bytes", minResponseSize), ErrTruncated)
	}

	def, replyOrRequest := selectRoot(conversation, buffer)
	if replyOrRequest {
		return nil, nil
	}
	if def == nil {
		return nil, newDiagnostic(SevError, CategorySchemaGap, 0, "", "no definition registered for response code", ErrSchemaGap)
	}

	cur := &cursor{buf: buffer}
	item, diag := dissectDefinition(conversation, cur, def)
	item.Name = def.Name()
	return item, diag
}

// selectRoot implements spec §4.E's root-selection table. The second
// return value is true for the reply path, which is reserved and always
// yields (nil, true).
func selectRoot(cv *Conversation, buffer []byte) (Definition, bool) {
	responseType := buffer[0]
	switch responseType {
	case 0: // error
		errorCode := int(buffer[1])
		if errorCode < 128 {
			return cv.ctx.coreErrorDefinition(errorCode), false
		}
		return cv.extensionErrorDefinition(errorCode), false
	case 1: // reply; reserved
		return nil, true
	default: // event
		eventCode := int(responseType &^ 0x80) // clear the SendEvent flag (bit 7)
		if eventCode < 64 {
			return cv.ctx.coreEventDefinition(eventCode), false
		}
		return cv.extensionEventDefinition(eventCode), false
	}
}

// dissectDefinition decodes one value of type def starting at cur's current
// position, honoring typedef transparency.
func dissectDefinition(cv *Conversation, cur *cursor, def Definition) (*Item, *Diagnostic) {
	switch d := def.(type) {
	case *Primitive:
		return dissectPrimitive(cv, cur, d, d)

	case *Typedef:
		target, err := resolveTypedef(d)
		if err != nil {
			diag := newDiagnostic(SevError, CategorySchemaError, cur.pos, d.DefName, err.Error(), err)
			return &Item{Def: d, Offset: cur.pos, Diag: diag}, diag
		}
		item, diag := dissectDefinition(cv, cur, target)
		// Typedef transparency: same bytes and value, surface name changed.
		item.Def = d
		return item, diag

	case *Struct:
		return dissectStruct(cv, cur, d)

	case *Union:
		diag := newDiagnostic(SevError, CategorySchemaError, cur.pos, d.DefName,
			"union dissection is reserved and not implemented", ErrSchemaGap)
		return &Item{Def: d, Offset: cur.pos, Diag: diag, Structured: true}, diag

	case nil:
		// A field whose type name did not resolve at compile time.
		diag := newDiagnostic(SevError, CategorySchemaError, cur.pos, "", ErrUnresolvedType.Error(), ErrUnresolvedType)
		return &Item{Offset: cur.pos, Diag: diag}, diag

	default:
		diag := newDiagnostic(SevError, CategorySchemaError, cur.pos, "", "unrecognized definition kind", ErrSchemaGap)
		return &Item{Offset: cur.pos, Diag: diag}, diag
	}
}

// dissectStruct builds a Struct Item by dissecting each field in order. The
// struct-in-progress is the parent passed to each field's length
// expression, so later fields can reference earlier siblings.
func dissectStruct(cv *Conversation, cur *cursor, def *Struct) (*Item, *Diagnostic) {
	item := &Item{Def: def, Offset: cur.pos, Structured: true}
	for _, fld := range def.Fields {
		child, diag := dissectField(cv, cur, fld, item)
		item.appendChild(child)
		if diag != nil {
			item.Diag = diag
			return item, diag
		}
	}
	return item, nil
}

// dissectField dissects one field of an enclosing struct, building either a
// single value or, when the field carries a length Expr, a list of values.
func dissectField(cv *Conversation, cur *cursor, fld FieldDef, parent *Item) (*Item, *Diagnostic) {
	if fld.Length == nil {
		child, diag := dissectDefinition(cv, cur, fld.Def)
		child.Name = fld.FieldName
		return child, diag
	}
	return dissectList(cv, cur, fld, parent)
}

// dissectList evaluates fld.Length against parent, then builds that many
// elements of fld.Def, named "[i]" by zero-based index.
func dissectList(cv *Conversation, cur *cursor, fld FieldDef, parent *Item) (*Item, *Diagnostic) {
	list := &Item{Name: fld.FieldName, Def: fld.Def, Offset: cur.pos, Structured: true}

	n, err := fld.Length.Eval(parent)
	if err != nil {
		diag := newDiagnostic(SevError, CategorySchemaError, cur.pos, fld.FieldName, err.Error(), err)
		list.Diag = diag
		return list, diag
	}
	if n < 0 {
		diag := newDiagnostic(SevError, CategorySchemaError, cur.pos, fld.FieldName,
			fmt.Sprintf("list length evaluated to negative value %d", n), nil)
		list.Diag = diag
		return list, diag
	}

	for i := int64(0); i < n; i++ {
		elem, diag := dissectDefinition(cv, cur, fld.Def)
		elem.Name = fmt.Sprintf("[%d]", i)
		list.appendChild(elem)
		if diag != nil {
			list.Diag = diag
			return list, diag
		}
	}
	return list, nil
}

// dissectPrimitive reads p's fixed byte width off cur, decoding it under
// the conversation's peer/host endianness pair, and labels the resulting
// Item with labelDef (the Primitive itself, or the Typedef dissecting
// through it, per typedef transparency).
func dissectPrimitive(cv *Conversation, cur *cursor, p *Primitive, labelDef Definition) (*Item, *Diagnostic) {
	start := cur.pos
	raw, ok := cur.take(p.Bytes)
	item := &Item{Def: labelDef, Offset: start, Class: p.Class}
	if !ok {
		diag := newDiagnostic(SevError, CategoryTruncation, start, labelDef.Name(),
			fmt.Sprintf("need %d bytes, have %d remaining", p.Bytes, cur.remaining()), ErrTruncated)
		item.Diag = diag
		return item, diag
	}

	agrees := p.Bytes == 1 || cv.peerLittleEndian == cv.ctx.hostLittleEndian
	effective := raw
	if !agrees {
		effective = buf.Reversed(raw)
	}
	decodeHostOrder16 := buf.U16LE
	decodeHostOrder32 := buf.U32LE
	if !cv.ctx.hostLittleEndian {
		decodeHostOrder16 = buf.U16BE
		decodeHostOrder32 = buf.U32BE
	}

	switch p.Class {
	case ClassBool:
		item.BoolValue = effective[0] != 0
	case ClassChar:
		item.CharValue = effective[0]
	case ClassSigned:
		switch p.Bytes {
		case 1:
			item.SignedValue = int64(int8(effective[0]))
		case 2:
			item.SignedValue = int64(int16(decodeHostOrder16(effective)))
		case 4:
			item.SignedValue = int64(int32(decodeHostOrder32(effective)))
		}
	case ClassUnsigned:
		switch p.Bytes {
		case 1:
			item.UnsignedValue = uint64(effective[0])
		case 2:
			item.UnsignedValue = uint64(decodeHostOrder16(effective))
		case 4:
			item.UnsignedValue = uint64(decodeHostOrder32(effective))
		}
	}
	return item, nil
}
