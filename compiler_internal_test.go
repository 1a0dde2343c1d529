package xamine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression_FieldRef(t *testing.T) {
	doc, err := ParseElement(strings.NewReader(`<fieldref>n</fieldref>`))
	require.NoError(t, err)

	e, ok := parseExpression(doc)
	require.True(t, ok)
	assert.Equal(t, ExprFieldRef{FieldName: "n"}, e)
}

func TestParseExpression_Value(t *testing.T) {
	doc, err := ParseElement(strings.NewReader(`<value>0x10</value>`))
	require.NoError(t, err)

	e, ok := parseExpression(doc)
	require.True(t, ok)
	assert.Equal(t, ExprLiteral{Value: 16}, e)
}

func TestParseExpression_Op(t *testing.T) {
	doc, err := ParseElement(strings.NewReader(`<op op="+"><fieldref>n</fieldref><value>4</value></op>`))
	require.NoError(t, err)

	e, ok := parseExpression(doc)
	require.True(t, ok)
	bin, ok := e.(ExprBinary)
	require.True(t, ok)
	assert.Equal(t, OpAdd, bin.Op)
	assert.Equal(t, ExprFieldRef{FieldName: "n"}, bin.Left)
	assert.Equal(t, ExprLiteral{Value: 4}, bin.Right)
}

func TestParseExpression_UnknownTag(t *testing.T) {
	doc, err := ParseElement(strings.NewReader(`<bogus/>`))
	require.NoError(t, err)

	_, ok := parseExpression(doc)
	assert.False(t, ok)
}

func TestCompileElement_PadField(t *testing.T) {
	ctx, err := NewContext(NoFlags)
	require.NoError(t, err)
	defer ctx.Release()

	doc, err := ParseElement(strings.NewReader(`<struct name="S"><pad bytes="3"/></struct>`))
	require.NoError(t, err)

	diags := Compile(ctx, doc)
	require.Empty(t, diags)

	def, ok := ctx.registry.Lookup("S")
	require.True(t, ok)
	s := def.(*Struct)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "pad", s.Fields[0].FieldName)
	n, err := s.Fields[0].Length.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
