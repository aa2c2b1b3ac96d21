package jsonpatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Grounded on the teacher's query_test.go GetValueCases.
func TestGetValueByPointer(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		path string
		want string
	}{
		{"simple key", `{"baz":"qux"}`, "/baz", `"qux"`},
		{"array element", `{"baz":"qux","foo":["a",2,"c"]}`, "/foo/0", `"a"`},
		{"array element number", `{"baz":"qux","foo":["a",2,"c"]}`, "/foo/1", `2`},
		{"nested object", `{"a":{"b":{"c":42}}}`, "/a/b/c", `42`},
		{"root", `{"a":1}`, "", `{"a":1}`},
		{"escaped slash key", `{"a/b":1}`, "/a~1b", `1`},
		{"escaped tilde key", `{"m~n":1}`, "/m~0n", `1`},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			doc := mustParse(t, c.doc)
			v, err := GetValueByPointer(doc, c.path)
			require.NoError(t, err)
			want := mustParse(t, c.want)
			require.True(t, areEquals(v, want))
		})
	}
}

func TestGetValueByPointerMissingPath(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	_, err := GetValueByPointer(doc, "/missing")
	require.Error(t, err)
}

func TestGetPathReturnsSlashForRoot(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	p, err := GetPath(doc, doc)
	require.NoError(t, err)
	require.Equal(t, "/", p)
}

func TestGetPathFindsNestedNodeByIdentity(t *testing.T) {
	doc := mustParse(t, `{"a":{"b":[1,2,{"c":3}]}}`)
	obj := doc.(*Object)
	aVal, _ := obj.Get("a")
	bVal, _ := aVal.(*Object).Get("b")
	target := bVal.(*Array).Items[2]

	p, err := GetPath(doc, target)
	require.NoError(t, err)
	require.Equal(t, "/a/b/2", p)
}

func TestGetPathNotFound(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	other := NewObject()
	_, err := GetPath(doc, other)
	require.Error(t, err)
}
