package jsonpatch

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// decodedOps decodes a marshaled Patch back into plain maps for
// structural comparison with go-cmp, sidestepping Value's unexported
// fields.
func decodedOps(t *testing.T, p Patch) []map[string]any {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestCompareIdentity(t *testing.T) {
	a := mustParse(t, `{"a":1,"b":[1,2,3]}`)
	patch := Compare(a, a, false)
	require.Empty(t, patch, "compare(a,a) must return an empty sequence")
}

// Scenario 5 from spec §8.
func TestCompareScenario5Replace(t *testing.T) {
	a := mustParse(t, `{"a":1,"b":2}`)
	b := mustParse(t, `{"a":1,"b":3}`)
	got := decodedOps(t, Compare(a, b, false))
	want := []map[string]any{{"op": "replace", "path": "/b", "value": float64(3)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
}

// Scenario 6 from spec §8: any replay-correct ordering is acceptable.
func TestCompareScenario6ArrayShrink(t *testing.T) {
	a := mustParse(t, `[1,2,3]`)
	b := mustParse(t, `[1,3]`)
	patch := Compare(a, b, false)
	applied, err := ApplyPatch(DeepClone(a), patch, DefaultApplyOptions())
	require.NoError(t, err)
	require.True(t, areEquals(applied[len(applied)-1].NewDocument, b))
}

func TestCompareRoundTripAcrossShapes(t *testing.T) {
	cases := [][2]string{
		{`{"foo":"bar"}`, `{"foo":"bar","baz":"qux"}`},
		{`{"a":[1,2,{"x":1}]}`, `{"a":[1,{"x":2}]}`},
		{`[1,2,3]`, `[1,3]`},
		{`[1,2,3]`, `[0,1,2,3,4]`},
		{`{"a":1}`, `[1,2,3]`},
		{`42`, `{"a":1}`},
		{`{"a":{"b":{"c":1}}}`, `{"a":{"b":{"c":2,"d":3}}}`},
		{`{}`, `{}`},
		{`{"a":1,"b":2,"c":3}`, `{"c":3}`},
	}
	for _, c := range cases {
		c := c
		t.Run(c[0]+"->"+c[1], func(t *testing.T) {
			a := mustParse(t, c[0])
			b := mustParse(t, c[1])
			patch := Compare(a, b, false)
			results, err := ApplyPatch(DeepClone(a), patch, DefaultApplyOptions())
			require.NoError(t, err)
			got := a
			if len(results) > 0 {
				got = results[len(results)-1].NewDocument
			}
			require.Truef(t, areEquals(got, b), "apply(compare(a,b), clone(a)) must equal b for %s -> %s", c[0], c[1])
		})
	}
}

func TestCompareInvertibleTestStepsPassAgainstSource(t *testing.T) {
	a := mustParse(t, `{"a":1,"b":[1,2,3],"c":"x"}`)
	b := mustParse(t, `{"a":2,"b":[1,2],"d":"y"}`)
	patch := Compare(a, b, true)

	clone := DeepClone(a)
	results, err := ApplyPatch(clone, patch, DefaultApplyOptions())
	require.NoError(t, err)
	got := a
	if len(results) > 0 {
		got = results[len(results)-1].NewDocument
	}
	require.True(t, areEquals(got, b))

	for _, op := range patch {
		if op.Op != OpTest {
			continue
		}
		require.True(t, op.Op.external())
	}
}

func TestCompareInvertiblePrependsTestBeforeEachMutation(t *testing.T) {
	a := mustParse(t, `{"a":1}`)
	b := mustParse(t, `{"a":2}`)
	patch := Compare(a, b, true)
	require.Len(t, patch, 2)
	require.Equal(t, OpTest, patch[0].Op)
	require.Equal(t, OpReplace, patch[1].Op)
	require.Equal(t, patch[0].Path, patch[1].Path)
}

func TestCompareShapeMismatchReplacesWholeNode(t *testing.T) {
	a := mustParse(t, `{"a":[1,2,3]}`)
	b := mustParse(t, `{"a":{"x":1}}`)
	got := decodedOps(t, Compare(a, b, false))
	require.Len(t, got, 1)
	require.Equal(t, "replace", got[0]["op"])
	require.Equal(t, "/a", got[0]["path"])
}
