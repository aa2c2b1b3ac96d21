package jsonpatch

import "strings"

// From http://tools.ietf.org/html/rfc6901#section-4 :
//
// Evaluation of each reference token begins by decoding any escaped
// character sequence. This is performed by first transforming any
// occurrence of the sequence '~1' to '/', and then transforming any
// occurrence of the sequence '~0' to '~'.
var (
	rfc6901Decoder = strings.NewReplacer("~1", "/", "~0", "~")
	rfc6901Encoder = strings.NewReplacer("~", "~0", "/", "~1")
)

// unescapeToken decodes a single pointer reference token.
func unescapeToken(tok string) string {
	return rfc6901Decoder.Replace(tok)
}

// escapeToken encodes a single pointer reference token. Order matters:
// '~' must be escaped before '/', otherwise the '~1' produced for '/'
// would itself be re-escaped.
func escapeToken(tok string) string {
	return rfc6901Encoder.Replace(tok)
}

// escapePathComponent is an unexported alias for escapeToken.
func escapePathComponent(s string) string { return escapeToken(s) }

// unescapePathComponent is an unexported alias for unescapeToken.
func unescapePathComponent(s string) string { return unescapeToken(s) }

// EscapePathComponent escapes a single JSON Pointer reference token.
func EscapePathComponent(s string) string { return escapeToken(s) }

// UnescapePathComponent unescapes a single JSON Pointer reference token.
func UnescapePathComponent(s string) string { return unescapeToken(s) }

// splitPointer splits a JSON Pointer into its (already-escaped) reference
// tokens. An empty pointer splits to an empty slice; splitPointer does
// not unescape tokens — callers unescape token-wise as they are consumed.
func splitPointer(p string) []string {
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	// A valid non-empty pointer starts with '/', so parts[0] is "".
	return parts[1:]
}
