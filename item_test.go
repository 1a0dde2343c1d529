package xamine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bluetech/libXamine"
)

func TestItem_WriteTree_StructWithChildren(t *testing.T) {
	card8 := &xamine.Primitive{DefName: "CARD8", Class: xamine.ClassUnsigned, Bytes: 1}
	s := &xamine.Struct{DefName: "Point"}
	root := &xamine.Item{Name: "Point", Def: s}
	root.BoolValue = false // structured item; scalar slots unused

	x := &xamine.Item{Name: "x", Def: card8, Class: xamine.ClassUnsigned, UnsignedValue: 5}
	y := &xamine.Item{Name: "y", Def: card8, Class: xamine.ClassUnsigned, UnsignedValue: 7}
	x.Next = y
	root.Child = x

	rendered := root.String()
	assert.True(t, strings.Contains(rendered, "Point Point = {"))
	assert.True(t, strings.Contains(rendered, "CARD8 x = 5"))
	assert.True(t, strings.Contains(rendered, "CARD8 y = 7"))
}

func TestItem_LeafString_CharClass(t *testing.T) {
	char := &xamine.Primitive{DefName: "char", Class: xamine.ClassChar, Bytes: 1}
	item := &xamine.Item{Name: "c", Def: char, Class: xamine.ClassChar, CharValue: 'A'}
	assert.Contains(t, item.String(), "'A'")
}

func TestItem_Children_EmptyForLeaf(t *testing.T) {
	item := &xamine.Item{}
	assert.Empty(t, item.Children())
}

func TestItem_DiagnosticRenderedInTree(t *testing.T) {
	cv := mustConversation(t)
	_, d := xamine.Examine(cv, xamine.DirResponse, make([]byte, 16))

	card8 := &xamine.Primitive{DefName: "CARD8", Class: xamine.ClassUnsigned, Bytes: 1}
	item := &xamine.Item{Name: "x", Def: card8, Diag: d}

	rendered := item.String()
	assert.True(t, strings.Contains(rendered, "!"))
}
