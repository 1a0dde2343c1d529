package xamine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetech/libXamine"
)

func TestConversation_RegisterExtensionAssignsCodeSpaces(t *testing.T) {
	ctx, err := xamine.NewContext(xamine.NoFlags)
	require.NoError(t, err)
	defer ctx.Release()

	cv, err := xamine.NewConversation(ctx, xamine.NoFlags)
	require.NoError(t, err)
	defer cv.Release()

	grabControl := &xamine.Struct{DefName: "xtest:GrabControl"}
	badValue := &xamine.Struct{DefName: "xtest:BadValue"}
	ext := &xamine.Extension{ShortName: "xtest", XName: "XTEST"}
	ext.Events = append(ext.Events, grabControl)
	ext.Errors = append(ext.Errors, badValue)

	cv.RegisterExtension(ext, 0x80)

	buf := make([]byte, 32)
	buf[0] = 64 // first extension event code
	item, diag := xamine.Examine(cv, xamine.DirResponse, buf)
	require.Nil(t, diag)
	require.NotNil(t, item)
	assert.Equal(t, "xtest:GrabControl", item.Name)

	buf2 := make([]byte, 32)
	buf2[0] = 0   // error
	buf2[1] = 128 // first extension error code
	item2, diag2 := xamine.Examine(cv, xamine.DirResponse, buf2)
	require.Nil(t, diag2)
	require.NotNil(t, item2)
	assert.Equal(t, "xtest:BadValue", item2.Name)
}
