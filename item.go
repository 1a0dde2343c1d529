package xamine

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Item is a node of the parse tree produced by dissection. Structured items
// (struct, list) carry children through Child/Next, the same shape as
// original_source's xamine_item: a single child pointer and a single next
// pointer, rather than a slice, so that freeing a tree is a matter of
// walking two pointers per node.
type Item struct {
	// Name is the field name that produced this item, or "[i]" for the
	// i-th element of a list, or the root definition's own name for a
	// dissected root.
	Name string

	// Def is the Definition that dissected this item. For a value
	// dissected through a Typedef, Def is the Typedef itself (typedef
	// transparency: same bytes, surface name changed), not its target.
	Def Definition

	// Offset is the byte offset within the original buffer at which this
	// item's bytes started.
	Offset int

	// Class is the primitive decoding class used to populate the scalar
	// fields below. Meaningless for structured items (Child != nil or the
	// item represents an empty list/struct).
	Class PrimitiveClass

	// Scalar value slots. Exactly one is meaningful, selected by Class.
	BoolValue     bool
	CharValue     byte
	SignedValue   int64
	UnsignedValue uint64

	// Child is the first child of a structured item (struct fields, or
	// list elements); nil for a primitive leaf or an empty list/struct.
	Child *Item
	// Next is the next sibling in the enclosing struct or list; nil for
	// the last child.
	Next *Item

	// Structured marks an item built by dissectStruct, dissectList, or the
	// union placeholder, as opposed to a primitive leaf. An empty list or
	// struct has Child == nil just like a primitive leaf, so Child == nil
	// alone cannot tell the two apart; PrimitiveClass's zero value
	// (ClassBool) would otherwise make such an item look like a valid,
	// false-valued bool leaf.
	Structured bool

	// Diag is set on the item at which a truncation or schema error was
	// detected, if dissection did not run to completion under this item.
	Diag *Diagnostic
}

// scalar returns the item's scalar value widened to a signed 64-bit
// integer, per Class. Used by field-reference expression evaluation.
// Returns false for anything that isn't a successfully decoded primitive
// leaf: a struct, a list (empty or not), or an item a diagnostic was
// raised against.
func (i *Item) scalar() (int64, bool) {
	if !i.isPrimitive() {
		return 0, false
	}
	switch i.Class {
	case ClassBool:
		if i.BoolValue {
			return 1, true
		}
		return 0, true
	case ClassChar:
		return int64(i.CharValue), true
	case ClassSigned:
		return i.SignedValue, true
	case ClassUnsigned:
		return int64(i.UnsignedValue), true
	default:
		return 0, false
	}
}

// isPrimitive reports whether this item was dissected from a primitive
// (directly, or transparently through a typedef chain ending at one),
// with no diagnostic raised against it.
func (i *Item) isPrimitive() bool {
	return !i.Structured && i.Diag == nil
}

// findChild scans this item's children in order for the first one named
// name, per the field-reference evaluation rule: left-to-right, first
// match.
func (i *Item) findChild(name string) *Item {
	for c := i.Child; c != nil; c = c.Next {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// appendChild appends child to the end of i's child list in O(children)
// time; struct/list construction is append-only and small enough that this
// never dominates dissection cost.
func (i *Item) appendChild(child *Item) {
	if i.Child == nil {
		i.Child = child
		return
	}
	c := i.Child
	for c.Next != nil {
		c = c.Next
	}
	c.Next = child
}

// Children returns the item's children as a slice, for callers that would
// rather range over a slice than walk the Child/Next linked list by hand.
func (i *Item) Children() []*Item {
	var out []*Item
	for c := i.Child; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// String renders the item and its subtree using WriteTree, matching
// original_source/test/ev.c's print_tree.
func (i *Item) String() string {
	var sb strings.Builder
	i.WriteTree(&sb, 0)
	return sb.String()
}

// WriteTree writes an indented rendering of the item and its subtree to w,
// grounded on the teacher's hive/printer text formatting and on
// original_source's print_tree: one line per item, "{ ... }" around a
// structured item's children, a typed literal for a leaf.
func (i *Item) WriteTree(w io.Writer, depth int) {
	if i == nil {
		return
	}
	indent := strings.Repeat(" ", depth)
	defName := "?"
	if i.Def != nil {
		defName = i.Def.Name()
	}
	if i.Child != nil || i.Structured {
		fmt.Fprintf(w, "%s%s %s = {\n", indent, defName, i.Name)
		for c := i.Child; c != nil; c = c.Next {
			c.WriteTree(w, depth+4)
		}
		fmt.Fprintf(w, "%s}\n", indent)
	} else {
		fmt.Fprintf(w, "%s%s %s = %s\n", indent, defName, i.Name, i.leafString())
	}
	if i.Diag != nil {
		fmt.Fprintf(w, "%s  ! %s\n", indent, i.Diag.Error())
	}
}

// leafString renders a primitive leaf's scalar value, decoding char-class
// scalars through ISO-8859-1 the way X11's core `char` type is specified
// (CHARINFO and STRING8 payloads are Latin-1), matching the teacher's use
// of golang.org/x/text/encoding/charmap for ANSI registry string decoding.
func (i *Item) leafString() string {
	switch i.Class {
	case ClassBool:
		if i.BoolValue {
			return "true"
		}
		return "false"
	case ClassChar:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes([]byte{i.CharValue})
		if err != nil || len(decoded) == 0 {
			return fmt.Sprintf("'\\x%02x'", i.CharValue)
		}
		return fmt.Sprintf("'%s'", decoded)
	case ClassSigned:
		return fmt.Sprintf("%d", i.SignedValue)
	case ClassUnsigned:
		return fmt.Sprintf("%d", i.UnsignedValue)
	default:
		return "<empty>"
	}
}
