package ir

import "fmt"

// FakeValue is the handle FakeEmitter hands out in place of an llvm.Value.
// It carries just enough information (a type tag and either an instruction
// label or a constant's literal value) for tests to assert on the emitted
// program shape without linking against LLVM.
type FakeValue struct {
	Type  string
	Op    string
	Const string
}

// FakeBlock stands in for an llvm.BasicBlock.
type FakeBlock struct {
	Label string
}

// FakeFunction stands in for an llvm.Value naming a function.
type FakeFunction struct {
	Name string
}

// Instruction records one emitted operation, in order, for assertions.
type Instruction struct {
	Op   string
	Args []any
}

// FakeEmitter is an in-memory Emitter for internal/semantic and
// internal/driver tests: no cgo, no native LLVM library required. It trades
// instruction-level fidelity for a log callers can assert against.
type FakeEmitter struct {
	Instructions []Instruction
	blockSeq     int
}

var _ Emitter = (*FakeEmitter)(nil)

func (f *FakeEmitter) record(op string, args ...any) {
	f.Instructions = append(f.Instructions, Instruction{Op: op, Args: args})
}

func (f *FakeEmitter) CreateType(typ string, dimension int) (any, error) {
	return FakeValue{Type: typ}, nil
}

func (f *FakeEmitter) CreateConstant(typ, value string) (any, error) {
	f.record("const", typ, value)
	return FakeValue{Type: typ, Const: value}, nil
}

func (f *FakeEmitter) CreateBooleanConstant(value string) (any, error) {
	if value != "True" && value != "False" {
		return nil, fmt.Errorf("ir: %q is not a boolean literal", value)
	}
	return FakeValue{Type: TypeBoolean, Const: value}, nil
}

func (f *FakeEmitter) CreateCharacterConstant(value byte) any {
	return FakeValue{Type: TypeCharacter, Const: string(rune(value))}
}

func (f *FakeEmitter) CreateArrayConstant(elemType any, values []any) any {
	f.record("array_const", elemType, values)
	return FakeValue{Type: "array"}
}

func (f *FakeEmitter) ConvertToFloat(v any) any {
	f.record("sitofp", v)
	return FakeValue{Type: TypeFloat}
}

func (f *FakeEmitter) ConvertToInteger(v any) any {
	f.record("fptosi", v)
	return FakeValue{Type: TypeInteger}
}

func (f *FakeEmitter) binaryOp(op, typ string, lhs, rhs any) any {
	f.record(op, typ, lhs, rhs)
	return FakeValue{Type: typ, Op: op}
}

func (f *FakeEmitter) CreateAdd(typ string, lhs, rhs any, name string) (any, error) {
	return f.binaryOp("add", typ, lhs, rhs), nil
}

func (f *FakeEmitter) CreateSub(typ string, lhs, rhs any, name string) (any, error) {
	return f.binaryOp("sub", typ, lhs, rhs), nil
}

func (f *FakeEmitter) CreateMul(typ string, lhs, rhs any, name string) (any, error) {
	return f.binaryOp("mul", typ, lhs, rhs), nil
}

func (f *FakeEmitter) CreateSDiv(typ string, lhs, rhs any, name string) (any, error) {
	if typ != TypeFloat {
		return nil, fmt.Errorf("ir: CreateSDiv: unsupported type %q", typ)
	}
	return f.binaryOp("fdiv", typ, lhs, rhs), nil
}

func (f *FakeEmitter) CreateExactSDiv(typ string, lhs, rhs any, name string) (any, error) {
	if typ != TypeInteger {
		return nil, fmt.Errorf("ir: CreateExactSDiv: unsupported type %q", typ)
	}
	return f.binaryOp("sdiv", typ, lhs, rhs), nil
}

func (f *FakeEmitter) CreateSRem(typ string, lhs, rhs any, name string) (any, error) {
	if typ != TypeInteger {
		return nil, fmt.Errorf("ir: CreateSRem: unsupported type %q", typ)
	}
	return f.binaryOp("srem", typ, lhs, rhs), nil
}

func (f *FakeEmitter) CreateCompare(typ, op string, lhs, rhs any, name string) (any, error) {
	f.record("cmp:"+op, typ, lhs, rhs)
	return FakeValue{Type: TypeBoolean, Op: op}, nil
}

func (f *FakeEmitter) CreateAlloca(typ any, name string) any {
	f.record("alloca", typ, name)
	return FakeValue{Type: "ptr", Op: "alloca:" + name}
}

func (f *FakeEmitter) CreateStore(val, ptr any) {
	f.record("store", val, ptr)
}

func (f *FakeEmitter) CreateLoad(ptr any, name string) any {
	f.record("load", ptr, name)
	return FakeValue{Op: "load:" + name}
}

func (f *FakeEmitter) AddGlobal(typ any, name string) any {
	f.record("global", typ, name)
	return FakeValue{Type: "ptr", Op: "global:" + name}
}

func (f *FakeEmitter) AddPrivateConstant(name string, init any) any {
	f.record("private_constant", name, init)
	return FakeValue{Type: "ptr", Op: "private:" + name}
}

func (f *FakeEmitter) CreateGlobalStringPtr(raw, name string) any {
	f.record("global_string", raw, name)
	return FakeValue{Type: TypeString, Const: raw}
}

func (f *FakeEmitter) CreateGEP(elemType any, ptr any, indices []any, name string) any {
	f.record("gep", elemType, ptr, indices)
	return FakeValue{Type: "ptr", Op: "gep"}
}

func (f *FakeEmitter) CreateBitCast(val any, typ any, name string) any {
	f.record("bitcast", val, typ)
	return FakeValue{Op: "bitcast"}
}

func (f *FakeEmitter) AddFunction(name string, retType any, paramTypes []any, variadic bool) any {
	f.record("function", name, retType, paramTypes, variadic)
	return FakeFunction{Name: name}
}

func (f *FakeEmitter) AddBasicBlock(fn any, name string) any {
	f.blockSeq++
	label := name
	if label == "" {
		label = fmt.Sprintf("bb%d", f.blockSeq)
	}
	f.record("block", fn, label)
	return FakeBlock{Label: label}
}

func (f *FakeEmitter) SetInsertPoint(bb any) {
	f.record("insert_point", bb)
}

func (f *FakeEmitter) CreateBr(target any) {
	f.record("br", target)
}

func (f *FakeEmitter) CreateCondBr(cond, thenBB, elseBB any) {
	f.record("condbr", cond, thenBB, elseBB)
}

func (f *FakeEmitter) CreateCall(fn any, args []any, name string) any {
	f.record("call", fn, args)
	return FakeValue{Op: "call"}
}

func (f *FakeEmitter) CreateRet(v any) {
	f.record("ret", v)
}
