package semantic

import (
	"fmt"
	"strings"
)

// ensureScanfPrototype declares (once) the external variadic scanf, cached
// on Handlers the way the source caches it across an entire parse.
func (h *Handlers) ensureScanfPrototype() (any, error) {
	if h.scanfProto != nil {
		return h.scanfProto, nil
	}
	i8ptr, err := h.IR.CreateType(TypeString, 0)
	if err != nil {
		return nil, err
	}
	i32, err := h.IR.CreateType(TypeInteger, 0)
	if err != nil {
		return nil, err
	}
	fn := h.IR.AddFunction("scanf", i32, []any{i8ptr}, true)
	h.scanfProto = fn
	return fn, nil
}

// ensurePrintfPrototype declares (once) the external variadic printf.
func (h *Handlers) ensurePrintfPrototype() (any, error) {
	if h.printfProto != nil {
		return h.printfProto, nil
	}
	i8ptr, err := h.IR.CreateType(TypeString, 0)
	if err != nil {
		return nil, err
	}
	i32, err := h.IR.CreateType(TypeInteger, 0)
	if err != nil {
		return nil, err
	}
	fn := h.IR.AddFunction("printf", i32, []any{i8ptr}, true)
	h.printfProto = fn
	return fn, nil
}

// formatSpecifier picks the printf/scanf conversion for t. scanf's %lf
// double conversion differs from printf's %f (varargs promote float to
// double for printf regardless, but scanf needs the pointee width spelled
// out), mirroring the distinction the source's read/write desugaring makes.
func formatSpecifier(t string, forScan bool) string {
	switch t {
	case TypeInteger:
		return "%d"
	case TypeFloat:
		if forScan {
			return "%lf"
		}
		return "%f"
	case TypeCharacter, TypeCharLiteral:
		return "%c"
	case TypeString, TypeStringLiteral:
		return "%s"
	default:
		return "%d"
	}
}

// Write desugars to a printf call over the node's already-synthesized
// argument children, building the format string from each argument's type.
func (h *Handlers) Write() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("Write: AST stack is empty")
	}
	fn, err := h.ensurePrintfPrototype()
	if err != nil {
		return h.fail("%v", err)
	}

	var format strings.Builder
	args := make([]any, 0, len(top.Children))
	for _, c := range top.Children {
		format.WriteString(formatSpecifier(typeOf(c), false))
		args = append(args, c.IRValue)
	}
	fmtPtr := h.IR.CreateGlobalStringPtr(format.String(), "write_format")
	h.IR.CreateCall(fn, append([]any{fmtPtr}, args...), "")
	top.Children = nil
	return true, nil
}

// Read desugars to a scanf call. Its argument children are l-value
// identifier leaves that must not have already been loaded, so their
// allocation pointers (rather than any loaded value) are passed to scanf.
func (h *Handlers) Read() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("Read: AST stack is empty")
	}
	fn, err := h.ensureScanfPrototype()
	if err != nil {
		return h.fail("%v", err)
	}

	var format strings.Builder
	args := make([]any, 0, len(top.Children))
	for _, target := range top.Children {
		idx, found := h.Scopes.Resolve(target.Lexeme)
		if !found {
			return h.fail("Undeclared identifier %q", target.Lexeme)
		}
		row, found := h.Symbols.Get(idx)
		if !found {
			return h.fail("Undeclared identifier %q", target.Lexeme)
		}
		format.WriteString(formatSpecifier(row.Type, true))
		args = append(args, row.IRHandle)
	}
	fmtPtr := h.IR.CreateGlobalStringPtr(format.String(), "read_format")
	h.IR.CreateCall(fn, append([]any{fmtPtr}, args...), "")
	top.Children = nil
	return true, nil
}
