package jsonpatch

import "fmt"

// ErrorCode is a machine-readable JSON Patch error code (spec §7).
type ErrorCode string

const (
	SequenceNotAnArray              ErrorCode = "SEQUENCE_NOT_AN_ARRAY"
	OperationNotAnObject            ErrorCode = "OPERATION_NOT_AN_OBJECT"
	OperationOpInvalid              ErrorCode = "OPERATION_OP_INVALID"
	OperationPathInvalid            ErrorCode = "OPERATION_PATH_INVALID"
	OperationFromRequired           ErrorCode = "OPERATION_FROM_REQUIRED"
	OperationValueRequired          ErrorCode = "OPERATION_VALUE_REQUIRED"
	OperationValueCannotContainUndef ErrorCode = "OPERATION_VALUE_CANNOT_CONTAIN_UNDEFINED"
	OperationPathCannotAdd          ErrorCode = "OPERATION_PATH_CANNOT_ADD"
	OperationPathUnresolvable       ErrorCode = "OPERATION_PATH_UNRESOLVABLE"
	OperationFromUnresolvable       ErrorCode = "OPERATION_FROM_UNRESOLVABLE"
	OperationPathIllegalArrayIndex  ErrorCode = "OPERATION_PATH_ILLEGAL_ARRAY_INDEX"
	OperationValueOutOfBounds       ErrorCode = "OPERATION_VALUE_OUT_OF_BOUNDS"
	TestOperationFailed             ErrorCode = "TEST_OPERATION_FAILED"
)

// JsonPatchError is the single error taxon for patch application and
// validation failures (spec §7): message, machine Name code, Index of
// the offending operation within the sequence, the Operation itself, and
// the Document it was applied against (nil when not applicable).
type JsonPatchError struct {
	Message   string
	Name      ErrorCode
	Index     int
	Operation *Operation
	Document  Value
}

func (e *JsonPatchError) Error() string {
	if e.Operation != nil {
		return fmt.Sprintf("jsonpatch: %s (index %d, op %q, path %q): %s",
			e.Name, e.Index, e.Operation.Op, e.Operation.Path, e.Message)
	}
	return fmt.Sprintf("jsonpatch: %s (index %d): %s", e.Name, e.Index, e.Message)
}

func newPatchError(name ErrorCode, index int, op *Operation, doc Value, format string, args ...any) *JsonPatchError {
	return &JsonPatchError{
		Message:   fmt.Sprintf(format, args...),
		Name:      name,
		Index:     index,
		Operation: op,
		Document:  doc,
	}
}

// PrototypePollutionError is raised, instead of a JsonPatchError, when an
// operation's path would create or traverse a '__proto__' key or a
// 'constructor'/'prototype' pair (spec §3, §7, §9). It is a distinct type
// so callers can tell a security rejection apart from an ordinary patch
// failure via errors.As.
type PrototypePollutionError struct {
	Path string
}

func (e *PrototypePollutionError) Error() string {
	return fmt.Sprintf("jsonpatch: prototype pollution attempt blocked at path %q", e.Path)
}
