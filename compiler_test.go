package xamine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetech/libXamine"
)

const coreSchema = `<xcb header="xproto">
  <struct name="KEYSYM">
    <field name="value" type="CARD32" />
  </struct>
  <xidtype name="WINDOW" />
  <typedef oldname="CARD32" newname="VALUE" />
  <event name="KeyPress" number="2">
    <field name="detail" type="CARD8" />
    <pad bytes="22" />
  </event>
  <eventcopy name="KeyRelease" ref="KeyPress" number="3" />
</xcb>`

func TestCompile_CoreSchema(t *testing.T) {
	ctx, err := xamine.NewContext(xamine.NoFlags)
	require.NoError(t, err)
	defer ctx.Release()

	doc, err := xamine.ParseElement(strings.NewReader(coreSchema))
	require.NoError(t, err)

	diags := xamine.Compile(ctx, doc)
	assert.Empty(t, diags)

	names := make(map[string]bool)
	for _, def := range ctx.Definitions() {
		names[def.Name()] = true
	}
	assert.True(t, names["KEYSYM"])
	assert.True(t, names["WINDOW"])
	assert.True(t, names["VALUE"])
	assert.True(t, names["KeyPress"])
}

func TestCompile_MissingAttributeIsSkippedNotFatal(t *testing.T) {
	ctx, err := xamine.NewContext(xamine.NoFlags)
	require.NoError(t, err)
	defer ctx.Release()

	doc, err := xamine.ParseElement(strings.NewReader(`<xcb>
  <struct>
    <field name="x" type="CARD8" />
  </struct>
  <struct name="Good">
    <field name="x" type="CARD8" />
  </struct>
</xcb>`))
	require.NoError(t, err)

	diags := xamine.Compile(ctx, doc)
	require.Len(t, diags, 1)
	assert.Equal(t, xamine.CategoryDocument, diags[0].Category)

	_, ok := lookupDef(ctx, "Good")
	assert.True(t, ok)
}

func TestCompile_ExtensionQualifiesNames(t *testing.T) {
	ctx, err := xamine.NewContext(xamine.NoFlags)
	require.NoError(t, err)
	defer ctx.Release()

	doc, err := xamine.ParseElement(strings.NewReader(`<xcb extension-xname="BIG-REQUESTS" extension-name="bigreq">
  <struct name="EnableReply">
    <field name="max_request_length" type="CARD32" />
  </struct>
</xcb>`))
	require.NoError(t, err)

	diags := xamine.Compile(ctx, doc)
	assert.Empty(t, diags)

	_, ok := lookupDef(ctx, "bigreq:EnableReply")
	assert.True(t, ok)

	exts := ctx.Extensions()
	require.Len(t, exts, 1)
	assert.Equal(t, "bigreq", exts[0].ShortName)
	assert.Equal(t, "BIG-REQUESTS", exts[0].XName)
}

func TestCompile_EventCopySplicesOntoExtensionEvents(t *testing.T) {
	ctx, err := xamine.NewContext(xamine.NoFlags)
	require.NoError(t, err)
	defer ctx.Release()

	doc, err := xamine.ParseElement(strings.NewReader(`<xcb extension-xname="XTEST" extension-name="xtest">
  <event name="GrabControl" number="0">
    <field name="impervious" type="BOOL" />
  </event>
  <eventcopy name="GrabControlCopy" ref="xtest:GrabControl" number="1" />
</xcb>`))
	require.NoError(t, err)

	diags := xamine.Compile(ctx, doc)
	assert.Empty(t, diags)

	exts := ctx.Extensions()
	require.Len(t, exts, 1)
	assert.Len(t, exts[0].Events, 2)
}

func lookupDef(ctx *xamine.Context, name string) (xamine.Definition, bool) {
	for _, def := range ctx.Definitions() {
		if def.Name() == name {
			return def, true
		}
	}
	return nil, false
}
