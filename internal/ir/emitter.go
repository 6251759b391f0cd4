package ir

import "tinygo.org/x/go-llvm"

// Emitter is the narrow, Go-value-typed view of Builder that
// internal/semantic and internal/driver depend on. Keeping handles as `any`
// instead of llvm.Value/llvm.Type/llvm.BasicBlock lets tests substitute
// FakeEmitter, which needs no LLVM library linked, the same way vartan's
// driver/lexer tests substitute a fakeLexer rather than exercising a real
// tokenizer end to end.
type Emitter interface {
	CreateType(typ string, dimension int) (any, error)
	CreateConstant(typ, value string) (any, error)
	CreateBooleanConstant(value string) (any, error)
	CreateCharacterConstant(value byte) any
	CreateArrayConstant(elemType any, values []any) any

	ConvertToFloat(v any) any
	ConvertToInteger(v any) any

	CreateAdd(typ string, lhs, rhs any, name string) (any, error)
	CreateSub(typ string, lhs, rhs any, name string) (any, error)
	CreateMul(typ string, lhs, rhs any, name string) (any, error)
	CreateSDiv(typ string, lhs, rhs any, name string) (any, error)
	CreateExactSDiv(typ string, lhs, rhs any, name string) (any, error)
	CreateSRem(typ string, lhs, rhs any, name string) (any, error)
	CreateCompare(typ, op string, lhs, rhs any, name string) (any, error)

	CreateAlloca(typ any, name string) any
	CreateStore(val, ptr any)
	CreateLoad(ptr any, name string) any

	AddGlobal(typ any, name string) any
	AddPrivateConstant(name string, init any) any
	CreateGlobalStringPtr(raw, name string) any
	CreateGEP(elemType any, ptr any, indices []any, name string) any
	CreateBitCast(val any, typ any, name string) any

	AddFunction(name string, retType any, paramTypes []any, variadic bool) any
	AddBasicBlock(fn any, name string) any
	SetInsertPoint(bb any)
	CreateBr(target any)
	CreateCondBr(cond, thenBB, elseBB any)
	CreateCall(fn any, args []any, name string) any
	CreateRet(v any)
}

// BuilderEmitter adapts *Builder to the Emitter interface, boxing and
// unboxing llvm.Value/llvm.Type/llvm.BasicBlock through `any`.
type BuilderEmitter struct {
	B *Builder
}

var _ Emitter = BuilderEmitter{}

func (e BuilderEmitter) CreateType(typ string, dimension int) (any, error) {
	return e.B.CreateType(typ, dimension)
}

func (e BuilderEmitter) CreateConstant(typ, value string) (any, error) {
	return e.B.CreateConstant(typ, value)
}

func (e BuilderEmitter) CreateBooleanConstant(value string) (any, error) {
	return e.B.CreateBooleanConstant(value)
}

func (e BuilderEmitter) CreateCharacterConstant(value byte) any {
	return e.B.CreateCharacterConstant(value)
}

func (e BuilderEmitter) CreateArrayConstant(elemType any, values []any) any {
	return e.B.CreateArrayConstant(elemType.(llvm.Type), toValues(values))
}

func (e BuilderEmitter) ConvertToFloat(v any) any {
	return e.B.ConvertToFloat(v.(llvm.Value))
}

func (e BuilderEmitter) ConvertToInteger(v any) any {
	return e.B.ConvertToInteger(v.(llvm.Value))
}

func (e BuilderEmitter) CreateAdd(typ string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateAdd(typ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateSub(typ string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateSub(typ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateMul(typ string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateMul(typ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateSDiv(typ string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateSDiv(typ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateExactSDiv(typ string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateExactSDiv(typ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateSRem(typ string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateSRem(typ, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateCompare(typ, op string, lhs, rhs any, name string) (any, error) {
	return e.B.CreateCompare(typ, op, lhs.(llvm.Value), rhs.(llvm.Value), name)
}

func (e BuilderEmitter) CreateAlloca(typ any, name string) any {
	return e.B.CreateAlloca(typ.(llvm.Type), name)
}

func (e BuilderEmitter) CreateStore(val, ptr any) {
	e.B.CreateStore(val.(llvm.Value), ptr.(llvm.Value))
}

func (e BuilderEmitter) CreateLoad(ptr any, name string) any {
	return e.B.CreateLoad(ptr.(llvm.Value), name)
}

func (e BuilderEmitter) AddGlobal(typ any, name string) any {
	return e.B.AddGlobal(typ.(llvm.Type), name)
}

func (e BuilderEmitter) AddPrivateConstant(name string, init any) any {
	return e.B.AddPrivateConstant(name, init.(llvm.Value))
}

func (e BuilderEmitter) CreateGlobalStringPtr(raw, name string) any {
	return e.B.CreateGlobalStringPtr(raw, name)
}

func (e BuilderEmitter) CreateGEP(elemType any, ptr any, indices []any, name string) any {
	return e.B.CreateGEP(elemType.(llvm.Type), ptr.(llvm.Value), toValues(indices), name)
}

func (e BuilderEmitter) CreateBitCast(val any, typ any, name string) any {
	return e.B.CreateBitCast(val.(llvm.Value), typ.(llvm.Type), name)
}

func (e BuilderEmitter) AddFunction(name string, retType any, paramTypes []any, variadic bool) any {
	types := make([]llvm.Type, len(paramTypes))
	for i, t := range paramTypes {
		types[i] = t.(llvm.Type)
	}
	return e.B.AddFunction(name, retType.(llvm.Type), types, variadic)
}

func (e BuilderEmitter) AddBasicBlock(fn any, name string) any {
	return e.B.AddBasicBlock(fn.(llvm.Value), name)
}

func (e BuilderEmitter) SetInsertPoint(bb any) {
	e.B.SetInsertPoint(bb.(llvm.BasicBlock))
}

func (e BuilderEmitter) CreateBr(target any) {
	e.B.CreateBr(target.(llvm.BasicBlock))
}

func (e BuilderEmitter) CreateCondBr(cond, thenBB, elseBB any) {
	e.B.CreateCondBr(cond.(llvm.Value), thenBB.(llvm.BasicBlock), elseBB.(llvm.BasicBlock))
}

func (e BuilderEmitter) CreateCall(fn any, args []any, name string) any {
	return e.B.CreateCall(fn.(llvm.Value), toValues(args), name)
}

func (e BuilderEmitter) CreateRet(v any) {
	if v == nil {
		e.B.CreateRet(llvm.Value{})
		return
	}
	e.B.CreateRet(v.(llvm.Value))
}

func toValues(xs []any) []llvm.Value {
	vs := make([]llvm.Value, len(xs))
	for i, x := range xs {
		vs[i] = x.(llvm.Value)
	}
	return vs
}
