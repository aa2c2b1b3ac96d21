package jsonpatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreEqualsScalars(t *testing.T) {
	assert.True(t, areEquals(Null{}, Null{}))
	assert.True(t, areEquals(Bool(true), Bool(true)))
	assert.False(t, areEquals(Bool(true), Bool(false)))
	assert.True(t, areEquals(Number(1), Number(1)))
	assert.False(t, areEquals(Number(1), Number(2)))
	assert.True(t, areEquals(String("a"), String("a")))
	assert.False(t, areEquals(String("a"), String("b")))
	assert.False(t, areEquals(Number(1), String("1")))
}

func TestAreEqualsNaN(t *testing.T) {
	nan := Number(math.NaN())
	assert.True(t, areEquals(nan, nan), "two NaNs must compare equal, per the reference a!==a && b!==b rule")
}

func TestAreEqualsObjectsIgnoreKeyOrder(t *testing.T) {
	a, err := ParseValue([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)
	b, err := ParseValue([]byte(`{"b":2,"a":1}`))
	require.NoError(t, err)
	assert.True(t, areEquals(a, b))
}

func TestAreEqualsArraysAndObjectsNeverEqual(t *testing.T) {
	arr, err := ParseValue([]byte(`[]`))
	require.NoError(t, err)
	obj, err := ParseValue([]byte(`{}`))
	require.NoError(t, err)
	assert.False(t, areEquals(arr, obj))
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	v, err := ParseValue([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)
	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())
}

func TestDeepCloneIsIndependent(t *testing.T) {
	v, err := ParseValue([]byte(`{"a":[1,2,3]}`))
	require.NoError(t, err)
	clone := DeepClone(v)
	obj := v.(*Object)
	cloneObj := clone.(*Object)
	arr, _ := obj.Get("a")
	cloneArr, _ := cloneObj.Get("a")
	require.NotSame(t, arr.(*Array), cloneArr.(*Array))
	assert.True(t, areEquals(v, clone))

	arr.(*Array).Items[0] = Number(999)
	assert.False(t, areEquals(v, clone), "mutating the original must not affect the clone")
}

func TestDeepCloneAbsentBecomesNull(t *testing.T) {
	clone := DeepClone(Absent)
	_, ok := clone.(Null)
	assert.True(t, ok)
}

func TestContainsAbsent(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	obj.Set("b", Absent)
	assert.True(t, containsAbsent(obj))

	obj2 := NewObject()
	obj2.Set("a", Number(1))
	assert.False(t, containsAbsent(obj2))
}
