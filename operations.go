package jsonpatch

// applyAdd implements `add` on a resolved parent container (spec §4.3).
func applyAdd(parent Value, key string, value Value) (Result, error) {
	switch c := parent.(type) {
	case *Object:
		c.Set(key, value)
		return Result{}, nil
	case *Array:
		idx := len(c.Items)
		if key != "-" {
			n, ok := parseUintToken(key)
			if !ok {
				return Result{}, newPatchError(OperationPathIllegalArrayIndex, -1, nil, nil,
					"array add requires '-' or an unsigned integer index, got %q", key)
			}
			idx = n
		}
		if idx < 0 || idx > len(c.Items) {
			return Result{}, newPatchError(OperationValueOutOfBounds, -1, nil, nil,
				"array index %d out of bounds for add (length %d)", idx, len(c.Items))
		}
		c.Items = append(c.Items, nil)
		copy(c.Items[idx+1:], c.Items[idx:])
		c.Items[idx] = value
		return Result{Index: idx, HasIndex: true}, nil
	default:
		return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil, "not a container")
	}
}

// applyRemove implements `remove` on a resolved parent container.
func applyRemove(parent Value, key string) (Result, error) {
	switch c := parent.(type) {
	case *Object:
		v, ok := c.Get(key)
		if !ok {
			return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil,
				"key %q does not exist", key)
		}
		c.Delete(key)
		return Result{Removed: v, HasRemoved: true}, nil
	case *Array:
		idx, ok := parseUintToken(key)
		if !ok || idx < 0 || idx >= len(c.Items) {
			return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil,
				"array index %q does not exist (length %d)", key, len(c.Items))
		}
		v := c.Items[idx]
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return Result{Removed: v, HasRemoved: true}, nil
	default:
		return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil, "not a container")
	}
}

// applyReplace implements `replace` on a resolved parent container.
func applyReplace(parent Value, key string, value Value) (Result, error) {
	switch c := parent.(type) {
	case *Object:
		old, ok := c.Get(key)
		if !ok {
			return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil,
				"key %q does not exist", key)
		}
		c.Set(key, value)
		return Result{Removed: old, HasRemoved: true}, nil
	case *Array:
		idx, ok := parseUintToken(key)
		if !ok || idx < 0 || idx >= len(c.Items) {
			return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil,
				"array index %q does not exist (length %d)", key, len(c.Items))
		}
		old := c.Items[idx]
		c.Items[idx] = value
		return Result{Removed: old, HasRemoved: true}, nil
	default:
		return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil, "not a container")
	}
}

// applyTest implements `test` on a resolved parent container: a missing
// key compares as Absent against the expected value.
func applyTest(parent Value, key string, value Value) (Result, error) {
	var existing Value = Absent
	switch c := parent.(type) {
	case *Object:
		if v, ok := c.Get(key); ok {
			existing = v
		}
	case *Array:
		if idx, ok := parseUintToken(key); ok && idx >= 0 && idx < len(c.Items) {
			existing = c.Items[idx]
		}
	default:
		return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil, "not a container")
	}
	return Result{Test: areEquals(existing, value)}, nil
}

// applyGet implements the internal `_get` pseudo-operation.
func applyGet(parent Value, key string) (Result, error) {
	var existing Value = Absent
	found := false
	switch c := parent.(type) {
	case *Object:
		if v, ok := c.Get(key); ok {
			existing, found = v, true
		}
	case *Array:
		if idx, ok := parseUintToken(key); ok && idx >= 0 && idx < len(c.Items) {
			existing, found = c.Items[idx], true
		}
	default:
		return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil, "not a container")
	}
	if !found {
		return Result{}, newPatchError(OperationPathUnresolvable, -1, nil, nil, "key %q does not exist", key)
	}
	return Result{GetValue: existing, HasGetValue: true}, nil
}
