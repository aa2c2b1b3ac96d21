package jsonpatch

import "strings"

// validateOperation runs the static (shape) and, when doc is non-nil,
// document-aware checks of spec §4.7 against a single operation;
// existingFragment is the deepest existing prefix of op.Path in doc.
func validateOperation(op Operation, index int, doc Value, existingFragment string) error {
	if !op.Op.external() && op.Op != opGet {
		return newPatchError(OperationOpInvalid, index, &op, doc, "unknown op %q", op.Op)
	}
	if op.Path != "" && !strings.HasPrefix(op.Path, "/") {
		return newPatchError(OperationPathInvalid, index, &op, doc, "path %q must start with '/'", op.Path)
	}
	switch op.Op {
	case OpMove, OpCopy:
		if op.From != "" && !strings.HasPrefix(op.From, "/") {
			return newPatchError(OperationFromRequired, index, &op, doc, "from %q must start with '/'", op.From)
		}
	case OpAdd, OpReplace, OpTest:
		if op.Value == nil || IsAbsent(op.Value) {
			return newPatchError(OperationValueRequired, index, &op, doc, "op %q requires a value", op.Op)
		}
		if containsAbsent(op.Value) {
			return newPatchError(OperationValueCannotContainUndef, index, &op, doc,
				"value for op %q contains the absent sentinel", op.Op)
		}
	}

	if doc == nil {
		return nil
	}

	switch op.Op {
	case OpAdd:
		tokens := unescapedTokens(op.Path)
		if len(tokens) > 0 {
			if last := tokens[len(tokens)-1]; last != "-" {
				if _, ok := parseUintToken(last); ok && hasLeadingZero(last) {
					return newPatchError(OperationPathIllegalArrayIndex, index, &op, doc,
						"array index %q has a leading zero", last)
				}
			}
		}
		fragTokens := unescapedTokens(existingFragment)
		if len(fragTokens) != len(tokens) && len(fragTokens) != len(tokens)-1 {
			return newPatchError(OperationPathCannotAdd, index, &op, doc,
				"path %q does not resolve to an existing slot or a single new leaf", op.Path)
		}
	case OpReplace, OpRemove, opGet:
		if existingFragment != op.Path {
			return newPatchError(OperationPathUnresolvable, index, &op, doc,
				"path %q does not resolve", op.Path)
		}
	case OpMove, OpCopy:
		fromTokens := unescapedTokens(op.From)
		fromFrag := existingPathFragment(doc, fromTokens)
		if fromFrag != op.From {
			return newPatchError(OperationFromUnresolvable, index, &op, doc,
				"from %q does not resolve", op.From)
		}
	}
	return nil
}

func hasLeadingZero(tok string) bool {
	return len(tok) > 1 && tok[0] == '0'
}

// Validate runs validateOperation over every operation in the sequence.
// When doc is non-nil, both doc and sequence are deep-cloned and the
// patch is trial-applied; the first error encountered (static,
// document-aware, or raised during trial application) is returned.
func Validate(sequence Patch, doc Value) error {
	for i, op := range sequence {
		if err := validateOperation(op, i, nil, ""); err != nil {
			return err
		}
	}
	if doc == nil {
		return nil
	}

	trialDoc := DeepClone(doc)
	trialSeq := make(Patch, len(sequence))
	for i, op := range sequence {
		trialSeq[i] = Operation{Op: op.Op, Path: op.Path, From: op.From, Value: DeepClone(op.Value)}
	}

	opts := ApplyOptions{Validate: true, Mutate: true, BanProto: true}
	if _, err := ApplyPatch(trialDoc, trialSeq, opts); err != nil {
		return err
	}
	return nil
}
