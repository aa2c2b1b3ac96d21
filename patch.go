package jsonpatch

import "fmt"

// ApplyOptions controls ApplyOperation/ApplyPatch behaviour (spec §6).
type ApplyOptions struct {
	// Validate runs the static+document-aware validator before applying
	// each operation.
	Validate bool
	// Mutate, when true (the default), mutates doc in place. When false,
	// the document is deep-cloned once before the first operation.
	Mutate bool
	// BanProto rejects '__proto__' and 'constructor'/'prototype' paths.
	BanProto bool
}

// DefaultApplyOptions returns the spec's defaults: validate=false,
// mutate=true, banProto=true.
func DefaultApplyOptions() ApplyOptions {
	return ApplyOptions{Mutate: true, BanProto: true}
}

// ApplyOperation applies a single operation to doc and returns the
// resulting Result (spec §6). index is the operation's position within
// an enclosing patch sequence, used only for error reporting.
func ApplyOperation(doc Value, op Operation, opts ApplyOptions, index int) (Result, error) {
	if opts.Validate {
		frag := ""
		if op.Path != "" {
			frag = existingPathFragment(doc, unescapedTokens(op.Path))
		}
		if err := validateOperation(op, index, doc, frag); err != nil {
			return Result{}, err
		}
	}

	if op.Path == "" {
		return applyRootOperation(doc, op, index)
	}

	tokens := unescapedTokens(op.Path)
	if opts.BanProto {
		if err := protoGuard(tokens); err != nil {
			return Result{}, err
		}
	}
	if (op.Op == OpMove || op.Op == OpCopy) && opts.BanProto && op.From != "" {
		if err := protoGuard(unescapedTokens(op.From)); err != nil {
			return Result{}, err
		}
	}

	switch op.Op {
	case OpMove:
		return applyMove(doc, op, index, opts)
	case OpCopy:
		return applyCopy(doc, op, index, opts)
	default:
		parent, key, err := resolveParent(doc, tokens)
		if err != nil {
			return Result{}, attachOp(err, op, index, doc)
		}
		res, err := dispatchContainerOp(parent, key, op)
		if err != nil {
			return Result{}, attachOp(err, op, index, doc)
		}
		if op.Op == OpTest && !res.Test {
			return res, newPatchError(TestOperationFailed, index, &op, doc,
				"path %q: expected %s, document has a different value", op.Path, Sprint(op.Value))
		}
		res.NewDocument = doc
		return res, nil
	}
}

func dispatchContainerOp(parent Value, key string, op Operation) (Result, error) {
	switch op.Op {
	case OpAdd:
		if containsAbsent(op.Value) {
			return Result{}, newPatchError(OperationValueCannotContainUndef, -1, nil, nil,
				"add value contains the absent sentinel")
		}
		return applyAdd(parent, key, op.Value)
	case OpRemove:
		return applyRemove(parent, key)
	case OpReplace:
		if containsAbsent(op.Value) {
			return Result{}, newPatchError(OperationValueCannotContainUndef, -1, nil, nil,
				"replace value contains the absent sentinel")
		}
		return applyReplace(parent, key, op.Value)
	case OpTest:
		if containsAbsent(op.Value) {
			return Result{}, newPatchError(OperationValueCannotContainUndef, -1, nil, nil,
				"test value contains the absent sentinel")
		}
		return applyTest(parent, key, op.Value)
	case opGet:
		return applyGet(parent, key)
	default:
		return Result{}, newPatchError(OperationOpInvalid, -1, nil, nil, "unknown operation %q", op.Op)
	}
}

func attachOp(err error, op Operation, index int, doc Value) error {
	if jpe, ok := err.(*JsonPatchError); ok {
		jpe.Index = index
		jpe.Operation = &op
		jpe.Document = doc
		return jpe
	}
	return err
}

// applyRootOperation implements spec §4.4: when path is empty the
// container does not exist, so dispatch on op directly against the
// document root.
func applyRootOperation(doc Value, op Operation, index int) (Result, error) {
	switch op.Op {
	case OpAdd:
		if containsAbsent(op.Value) {
			return Result{}, newPatchError(OperationValueCannotContainUndef, index, &op, doc, "add value contains absent")
		}
		return Result{NewDocument: op.Value}, nil
	case OpReplace:
		if containsAbsent(op.Value) {
			return Result{}, newPatchError(OperationValueCannotContainUndef, index, &op, doc, "replace value contains absent")
		}
		return Result{NewDocument: op.Value, Removed: doc, HasRemoved: true}, nil
	case OpRemove:
		return Result{NewDocument: Null{}, Removed: doc, HasRemoved: true}, nil
	case OpMove, OpCopy:
		// Root move/copy replaces the whole document with the value at
		// `from`, but performs no symmetric removal at `from`. This is a
		// known compatibility quirk preserved from the reference
		// implementation (spec §4.4, §9) — it is not a bug to fix here.
		src, ok, err := navigate(doc, unescapedTokens(op.From))
		if err != nil {
			return Result{}, attachOp(err, op, index, doc)
		}
		if !ok {
			return Result{}, newPatchError(OperationFromUnresolvable, index, &op, doc,
				"from path %q does not resolve", op.From)
		}
		res := Result{NewDocument: src}
		if op.Op == OpMove {
			res.Removed = doc
			res.HasRemoved = true
		}
		return res, nil
	case OpTest:
		if !areEquals(doc, op.Value) {
			return Result{}, newPatchError(TestOperationFailed, index, &op, doc,
				"root test failed: expected %s", Sprint(op.Value))
		}
		return Result{NewDocument: doc, Test: true}, nil
	case opGet:
		return Result{NewDocument: doc, GetValue: doc, HasGetValue: true}, nil
	default:
		return Result{}, newPatchError(OperationOpInvalid, index, &op, doc, "unexpected op %q at root", op.Op)
	}
}

// applyMove implements `move` in terms of the remove/add primitives
// (spec §4.3): the displaced target (if any) is captured as Removed
// before the move happens; the moved-from value itself is never
// reported as Removed.
func applyMove(doc Value, op Operation, index int, opts ApplyOptions) (Result, error) {
	src, ok, err := navigate(doc, unescapedTokens(op.From))
	if err != nil {
		return Result{}, attachOp(err, op, index, doc)
	}
	if !ok {
		return Result{}, newPatchError(OperationFromUnresolvable, index, &op, doc,
			"from path %q does not resolve", op.From)
	}

	// The displaced target is whatever already sits at the destination,
	// captured before the move happens; the moved-from value itself must
	// never be reported as Removed.
	displaced, displacedOK, err := navigate(doc, unescapedTokens(op.Path))
	if err != nil {
		return Result{}, attachOp(err, op, index, doc)
	}

	_, err = ApplyOperation(doc, Operation{Op: OpRemove, Path: op.From}, ApplyOptions{BanProto: opts.BanProto}, index)
	if err != nil {
		return Result{}, attachOp(err, op, index, doc)
	}

	addRes, err := ApplyOperation(doc, Operation{Op: OpAdd, Path: op.Path, Value: src}, ApplyOptions{BanProto: opts.BanProto}, index)
	if err != nil {
		return Result{}, attachOp(err, op, index, doc)
	}
	addRes.Removed = displaced
	addRes.HasRemoved = displacedOK
	addRes.NewDocument = doc
	return addRes, nil
}

// applyCopy implements `copy` in terms of the add primitive over a
// deep clone of the resolved source (spec §4.3).
func applyCopy(doc Value, op Operation, index int, opts ApplyOptions) (Result, error) {
	src, ok, err := navigate(doc, unescapedTokens(op.From))
	if err != nil {
		return Result{}, attachOp(err, op, index, doc)
	}
	if !ok {
		return Result{}, newPatchError(OperationFromUnresolvable, index, &op, doc,
			"from path %q does not resolve", op.From)
	}
	res, err := ApplyOperation(doc, Operation{Op: OpAdd, Path: op.Path, Value: DeepClone(src)}, ApplyOptions{BanProto: opts.BanProto}, index)
	if err != nil {
		return Result{}, attachOp(err, op, index, doc)
	}
	res.NewDocument = doc
	return res, nil
}

// ApplyPatch applies a sequence of operations to doc in order, threading
// the (possibly root-replacing) document through each step, and returns
// the per-operation results with NewDocument attached (spec §5, §6).
func ApplyPatch(doc Value, patch Patch, opts ApplyOptions) ([]Result, error) {
	if !opts.Mutate {
		doc = DeepClone(doc)
	}
	results := make([]Result, 0, len(patch))
	root := doc
	for i, op := range patch {
		res, err := ApplyOperation(root, op, opts, i)
		if err != nil {
			return results, err
		}
		if res.NewDocument != nil {
			root = res.NewDocument
		} else {
			res.NewDocument = root
		}
		results = append(results, res)
	}
	return results, nil
}

// ApplyReducer is a convenience wrapper that returns the resulting
// document and raises on a failed `test`.
func ApplyReducer(doc Value, op Operation, index int) (Value, error) {
	res, err := ApplyOperation(doc, op, DefaultApplyOptions(), index)
	if err != nil {
		return doc, err
	}
	if op.Op == OpTest && !res.Test {
		return doc, fmt.Errorf("jsonpatch: test operation at index %d failed", index)
	}
	return res.NewDocument, nil
}
