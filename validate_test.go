package jsonpatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRejectsUnknownOp(t *testing.T) {
	seq := Patch{{Op: "frobnicate", Path: "/a"}}
	err := Validate(seq, nil)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationOpInvalid, jpe.Name)
}

func TestValidateRejectsPathWithoutLeadingSlash(t *testing.T) {
	seq := Patch{{Op: OpAdd, Path: "a", Value: Number(1)}}
	err := Validate(seq, nil)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationPathInvalid, jpe.Name)
}

func TestValidateRequiresValueForAdd(t *testing.T) {
	seq := Patch{{Op: OpAdd, Path: "/a", Value: Absent}}
	err := Validate(seq, nil)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationValueRequired, jpe.Name)
}

func TestValidateRejectsValueContainingAbsent(t *testing.T) {
	bad := NewObject()
	bad.Set("x", Absent)
	seq := Patch{{Op: OpAdd, Path: "/a", Value: bad}}
	err := Validate(seq, nil)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationValueCannotContainUndef, jpe.Name)
}

func TestValidateRequiresFromForMoveCopy(t *testing.T) {
	seq := Patch{{Op: OpMove, Path: "/a", From: "no-leading-slash"}}
	err := Validate(seq, nil)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationFromRequired, jpe.Name)
}

func TestValidateAgainstDocumentResolvable(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	seq := Patch{{Op: OpReplace, Path: "/a", Value: Number(2)}}
	require.NoError(t, Validate(seq, doc))
}

func TestValidateAgainstDocumentUnresolvable(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	seq := Patch{{Op: OpReplace, Path: "/missing", Value: Number(2)}}
	err := Validate(seq, doc)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationPathUnresolvable, jpe.Name)
}

func TestValidateAddAtExistingSlotOrOneNewLeaf(t *testing.T) {
	doc := mustParse(t, `{"a":{"b":1}}`)
	// existing slot
	require.NoError(t, Validate(Patch{{Op: OpAdd, Path: "/a/b", Value: Number(2)}}, doc))
	// one new leaf
	require.NoError(t, Validate(Patch{{Op: OpAdd, Path: "/a/c", Value: Number(2)}}, doc))
	// two new levels: not allowed
	err := Validate(Patch{{Op: OpAdd, Path: "/a/x/y", Value: Number(2)}}, doc)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationPathCannotAdd, jpe.Name)
}

func TestValidateDoesNotMutateOriginalDocument(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	seq := Patch{{Op: OpReplace, Path: "/a", Value: Number(99)}}
	require.NoError(t, Validate(seq, doc))
	require.True(t, areEquals(doc, mustParse(t, `{"a":1}`)))
}

func TestValidateMoveRequiresResolvableFrom(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	seq := Patch{{Op: OpMove, From: "/missing", Path: "/b"}}
	err := Validate(seq, doc)
	require.Error(t, err)
	jpe := err.(*JsonPatchError)
	require.Equal(t, OperationFromUnresolvable, jpe.Name)
}
