package jsonpatch

import "strconv"

// protoGuard rejects any token sequence that would create a '__proto__'
// key, or reach a 'prototype' key immediately beneath a 'constructor'
// key. Languages without a prototype chain have no attack surface here,
// but the guard is still enforced to keep patch replay behaviour uniform
// across implementations (spec §3, §9).
func protoGuard(tokens []string) error {
	for i, t := range tokens {
		if t == "__proto__" {
			return &PrototypePollutionError{Path: joinTokens(tokens)}
		}
		if i > 0 && t == "prototype" && tokens[i-1] == "constructor" {
			return &PrototypePollutionError{Path: joinTokens(tokens)}
		}
	}
	return nil
}

func joinTokens(tokens []string) string {
	s := ""
	for _, t := range tokens {
		s += "/" + escapeToken(t)
	}
	if s == "" {
		return ""
	}
	return s
}

// unescapedTokens splits and unescapes a JSON Pointer into its reference
// tokens.
func unescapedTokens(path string) []string {
	raw := splitPointer(path)
	out := make([]string, len(raw))
	for i, t := range raw {
		out[i] = unescapeToken(t)
	}
	return out
}

// parseUintToken parses an unsigned base-10 array index with no leading
// sign. Leading zeros are accepted here (resolution is lenient);
// validation enforces strict integer form separately.
func parseUintToken(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

// getChild resolves a single reference token against a container value.
// It returns (value, true, nil) when the key exists, (nil, false, nil)
// when it cleanly does not, and a non-nil error when cur is not a
// container at all (an interior node that isn't an object or array).
func getChild(cur Value, token string) (Value, bool, error) {
	switch c := cur.(type) {
	case *Object:
		v, ok := c.Get(token)
		return v, ok, nil
	case *Array:
		if token == "-" {
			return nil, false, nil
		}
		idx, ok := parseUintToken(token)
		if !ok || idx < 0 || idx >= len(c.Items) {
			return nil, false, nil
		}
		return c.Items[idx], true, nil
	default:
		return nil, false, newPatchError(OperationPathUnresolvable, -1, nil, nil,
			"path segment %q does not resolve: parent is not a container", token)
	}
}

// navigate walks every token in tokens against root and returns the
// final resolved value.
func navigate(root Value, tokens []string) (Value, bool, error) {
	cur := root
	for _, tok := range tokens {
		next, ok, err := getChild(cur, tok)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		cur = next
	}
	return cur, true, nil
}

// resolveParent walks all but the last token of tokens, returning the
// parent container and the final (unescaped) token. It is an error for
// an interior node to not be a container, or to not exist.
func resolveParent(root Value, tokens []string) (Value, string, error) {
	if len(tokens) == 0 {
		return nil, "", newPatchError(OperationPathUnresolvable, -1, nil, nil, "empty path has no parent")
	}
	cur := root
	for _, tok := range tokens[:len(tokens)-1] {
		next, ok, err := getChild(cur, tok)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return nil, "", newPatchError(OperationPathUnresolvable, -1, nil, nil,
				"path segment %q not found", tok)
		}
		cur = next
	}
	switch cur.(type) {
	case *Object, *Array:
	default:
		return nil, "", newPatchError(OperationPathUnresolvable, -1, nil, nil,
			"parent is not a container")
	}
	return cur, tokens[len(tokens)-1], nil
}

// existingPathFragment returns the longest prefix of tokens that
// resolves against root, as a pointer string, for use by the validator
// (spec §4.7).
func existingPathFragment(root Value, tokens []string) string {
	cur := root
	depth := 0
	for _, tok := range tokens {
		next, ok, err := getChild(cur, tok)
		if err != nil || !ok {
			break
		}
		cur = next
		depth++
	}
	frag := ""
	for _, t := range tokens[:depth] {
		frag += "/" + escapeToken(t)
	}
	return frag
}
