package jsonpatch

import "strconv"

// Compare generates a minimal, replayable operation list that transforms
// a into a value structurally equal to b (spec §4.6). When invertible is
// true, a `test` of the prior value is emitted before every mutating
// step, so the resulting patch both verifies the source state and can be
// manually inverted.
func Compare(a, b Value, invertible bool) Patch {
	out := make(Patch, 0)
	diffPair(a, b, "", invertible, &out)
	return out
}

// sameRef reports whether mirror and obj are "identically the same
// object" in the source algorithm's sense: reference identity for
// *Array/*Object, value identity for scalars (spec §4.6, §9 — for
// scalars, identity and structural equality coincide, except that a NaN
// is never identical to another NaN although areEquals treats them as
// equal).
func sameRef(mirror, obj Value) bool {
	switch m := mirror.(type) {
	case *Array:
		o, ok := obj.(*Array)
		return ok && m == o
	case *Object:
		o, ok := obj.(*Object)
		return ok && m == o
	case Null:
		_, ok := obj.(Null)
		return ok
	case Bool:
		o, ok := obj.(Bool)
		return ok && m == o
	case Number:
		o, ok := obj.(Number)
		return ok && m == o
	case String:
		o, ok := obj.(String)
		return ok && m == o
	default:
		return false
	}
}

// diffPair recurses on a paired (mirror, obj) node at path.
func diffPair(mirror, obj Value, path string, invertible bool, out *Patch) {
	if sameRef(mirror, obj) {
		return
	}
	obj = canonicalize(obj)
	if sameRef(mirror, obj) {
		return
	}

	mArr, mIsArr := mirror.(*Array)
	oArr, oIsArr := obj.(*Array)
	mObj, mIsObj := mirror.(*Object)
	oObj, oIsObj := obj.(*Object)

	switch {
	case mIsArr && oIsArr:
		diffArray(mArr, oArr, path, invertible, out)
	case mIsObj && oIsObj:
		diffObject(mObj, oObj, path, invertible, out)
	default:
		// Shape mismatch at this node — the two sides are not both
		// arrays or both objects (this also covers the scalar-vs-scalar
		// "differ by identity" case, since identity and structural
		// equality coincide for scalars). Replace the whole node here
		// and do not recurse further into this branch.
		if invertible {
			*out = append(*out, Operation{Op: OpTest, Path: path, Value: DeepClone(mirror)})
		}
		*out = append(*out, Operation{Op: OpReplace, Path: path, Value: DeepClone(obj)})
	}
}

func diffObject(mirror, obj *Object, path string, invertible bool, out *Patch) {
	oldKeys := mirror.Keys()
	deleted := false

	// Reverse iteration matters for arrays (tail removals keep earlier
	// indices valid on replay); kept here too so object and array diffs
	// share one code shape, even though object key removal order has no
	// such constraint.
	for i := len(oldKeys) - 1; i >= 0; i-- {
		key := oldKeys[i]
		oldVal := mirror.vals[key]
		newVal, exists := obj.Get(key)
		childPath := path + "/" + escapeToken(key)
		if exists && !IsAbsent(newVal) {
			diffPair(oldVal, newVal, childPath, invertible, out)
			continue
		}
		if invertible {
			*out = append(*out, Operation{Op: OpTest, Path: childPath, Value: DeepClone(oldVal)})
		}
		*out = append(*out, Operation{Op: OpRemove, Path: childPath})
		deleted = true
	}

	if !deleted && obj.Len() == mirror.Len() {
		return
	}

	for _, key := range obj.Keys() {
		if _, existedOld := mirror.Get(key); existedOld {
			continue
		}
		newVal, _ := obj.Get(key)
		if IsAbsent(newVal) {
			continue
		}
		*out = append(*out, Operation{Op: OpAdd, Path: path + "/" + escapeToken(key), Value: DeepClone(newVal)})
	}
}

func diffArray(mirror, obj *Array, path string, invertible bool, out *Patch) {
	oldLen := len(mirror.Items)
	newLen := len(obj.Items)
	deleted := false

	// Reverse iteration is load-bearing here: removing tail indices
	// first keeps earlier indices valid for the rest of this pass and
	// for eventual replay (spec §4.6, §9).
	for i := oldLen - 1; i >= 0; i-- {
		oldVal := mirror.Items[i]
		childPath := path + "/" + strconv.Itoa(i)
		if i < newLen {
			// An absent-valued array element never suppresses emission;
			// arrays are dense, so index i<newLen always "exists".
			diffPair(oldVal, obj.Items[i], childPath, invertible, out)
			continue
		}
		if invertible {
			*out = append(*out, Operation{Op: OpTest, Path: childPath, Value: DeepClone(oldVal)})
		}
		*out = append(*out, Operation{Op: OpRemove, Path: childPath})
		deleted = true
	}

	if !deleted && newLen == oldLen {
		return
	}

	for i := oldLen; i < newLen; i++ {
		*out = append(*out, Operation{Op: OpAdd, Path: path + "/" + strconv.Itoa(i), Value: DeepClone(obj.Items[i])})
	}
}
