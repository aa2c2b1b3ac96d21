package jsonpatch

import "fmt"

// GetValueByPointer resolves pointer against doc and returns the value
// found there (spec §6). It is implemented via the internal `_get`
// pseudo-operation so that it shares exactly the same traversal and
// prototype-guard rules as patch application.
func GetValueByPointer(doc Value, pointer string) (Value, error) {
	res, err := ApplyOperation(doc, Operation{Op: opGet, Path: pointer}, ApplyOptions{BanProto: true}, 0)
	if err != nil {
		return nil, err
	}
	if !res.HasGetValue {
		return nil, fmt.Errorf("jsonpatch: pointer %q did not resolve to a value", pointer)
	}
	return res.GetValue, nil
}

// GetPath performs a reverse lookup: it returns the JSON Pointer from
// root to node, found by node identity (*Array/*Object pointer equality,
// or value equality for scalars), escaping each hop. It returns "/" if
// root and node are the very same node, and an error if node cannot be
// found anywhere under root.
func GetPath(root, node Value) (string, error) {
	if sameNode(root, node) {
		return "/", nil
	}
	path, ok := findPath(root, node)
	if !ok {
		return "", fmt.Errorf("jsonpatch: node not found in document")
	}
	return path, nil
}

func sameNode(a, b Value) bool {
	switch av := a.(type) {
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	default:
		return areEquals(a, b)
	}
}

func findPath(cur, target Value) (string, bool) {
	switch c := cur.(type) {
	case *Array:
		for i, item := range c.Items {
			if sameNode(item, target) {
				return "/" + escapeToken(fmt.Sprintf("%d", i)), true
			}
			if sub, ok := findPath(item, target); ok {
				return "/" + escapeToken(fmt.Sprintf("%d", i)) + sub, true
			}
		}
	case *Object:
		for _, k := range c.Keys() {
			v, _ := c.Get(k)
			if sameNode(v, target) {
				return "/" + escapeToken(k), true
			}
			if sub, ok := findPath(v, target); ok {
				return "/" + escapeToken(k) + sub, true
			}
		}
	}
	return "", false
}
