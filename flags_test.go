package xamine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bluetech/libXamine"
)

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "response", xamine.DirResponse.String())
	assert.Equal(t, "request", xamine.DirRequest.String())
}

func TestPrimitiveClass_String(t *testing.T) {
	assert.Equal(t, "bool", xamine.ClassBool.String())
	assert.Equal(t, "char", xamine.ClassChar.String())
	assert.Equal(t, "signed", xamine.ClassSigned.String())
	assert.Equal(t, "unsigned", xamine.ClassUnsigned.String())
}

func TestDefinitionKind_String(t *testing.T) {
	assert.Equal(t, "primitive", xamine.KindPrimitive.String())
	assert.Equal(t, "struct", xamine.KindStruct.String())
	assert.Equal(t, "union", xamine.KindUnion.String())
	assert.Equal(t, "typedef", xamine.KindTypedef.String())
}
