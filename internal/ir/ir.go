// Package ir is the facade over the external IR builder collaborator,
// wrapping tinygo.org/x/go-llvm the way
// other_examples' vslc/src/ir/llvm/transform.go wraps the same binding: one
// long-lived Context/Module/Builder triple, typed constant constructors, and
// arithmetic helpers that convert operands before emitting the float variant
// of an instruction. The type-dispatch shape of CreateAdd/CreateSub/CreateMul
// and the ConvertToFloat/ConvertToInteger helpers are ported directly from
// original_source/LlvmHelper/LlvmHelper.cpp, which this language's front end
// calls for every arithmetic AST node.
package ir

import (
	"fmt"
	"strconv"
	"strings"

	"tinygo.org/x/go-llvm"
)

// Type names as spelled in this language's declarations; CreateType and
// CreateConstant switch on these exactly as LlvmHelper::CreateType does.
const (
	TypeInteger   = "integer"
	TypeFloat     = "float"
	TypeCharacter = "character"
	TypeBoolean   = "boolean"
	TypeVoid      = "void"
	TypeString    = "string"
)

// Builder owns one LLVM context, module and IR builder. It is not safe for
// concurrent use from multiple goroutines without external synchronization,
// mirroring vslc's per-thread builder convention (transform.go gives each
// worker goroutine its own llvm.Builder over a shared llvm.Context).
type Builder struct {
	ctx     llvm.Context
	module  llvm.Module
	builder llvm.Builder
}

// New creates a Builder with a fresh context and a module named moduleName.
func New(moduleName string) *Builder {
	ctx := llvm.NewContext()
	return &Builder{
		ctx:     ctx,
		module:  ctx.NewModule(moduleName),
		builder: ctx.NewBuilder(),
	}
}

// Dispose releases the underlying LLVM builder, module and context.
func (b *Builder) Dispose() {
	b.builder.Dispose()
	b.module.Dispose()
	b.ctx.Dispose()
}

// Module exposes the underlying llvm.Module for callers that need to dump or
// finalize it (internal/driver's embedder, cmd/llparse).
func (b *Builder) Module() llvm.Module {
	return b.module
}

// String returns the textual IR of the module, printed through
// diag.Printer.IR by the parse and run subcommands' --emit-ir flag.
func (b *Builder) String() string {
	return b.module.String()
}

// CreateType maps a declared type name (and, for arrays, a dimension) to an
// llvm.Type. dimension <= 0 means "not an array".
func (b *Builder) CreateType(typ string, dimension int) (llvm.Type, error) {
	elem, err := b.scalarType(typ)
	if err != nil {
		return llvm.Type{}, err
	}
	if dimension <= 0 {
		return elem, nil
	}
	return llvm.ArrayType(elem, dimension), nil
}

func (b *Builder) scalarType(typ string) (llvm.Type, error) {
	switch typ {
	case TypeInteger:
		return b.ctx.Int32Type(), nil
	case TypeFloat:
		return b.ctx.DoubleType(), nil
	case TypeCharacter, TypeBoolean:
		return b.ctx.Int8Type(), nil
	case TypeVoid:
		return b.ctx.VoidType(), nil
	case TypeString:
		return llvm.PointerType(b.ctx.Int8Type(), 0), nil
	default:
		return llvm.Type{}, fmt.Errorf("ir: unsupported type %q", typ)
	}
}

// CreateConstant builds a typed constant from its literal text
// representation, following LlvmHelper::CreateConstant's exact dispatch:
// integer/float parse the text, boolean recognizes the "True"/"False"
// spellings, character takes the second rune of a quoted literal like 'a'.
func (b *Builder) CreateConstant(typ, value string) (llvm.Value, error) {
	switch typ {
	case TypeInteger:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return llvm.Value{}, fmt.Errorf("ir: invalid integer literal %q: %w", value, err)
		}
		return llvm.ConstInt(b.ctx.Int32Type(), uint64(n), true), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return llvm.Value{}, fmt.Errorf("ir: invalid float literal %q: %w", value, err)
		}
		return llvm.ConstFloat(b.ctx.DoubleType(), f), nil
	case TypeBoolean:
		return b.CreateBooleanConstant(value)
	case TypeCharacter:
		runes := []rune(value)
		if len(runes) < 3 {
			return llvm.Value{}, fmt.Errorf("ir: invalid character literal %q", value)
		}
		return b.CreateCharacterConstant(byte(runes[1])), nil
	default:
		return llvm.Value{}, fmt.Errorf("ir: unsupported constant type %q", typ)
	}
}

// CreateBooleanConstant accepts the literal spellings "True"/"False".
func (b *Builder) CreateBooleanConstant(value string) (llvm.Value, error) {
	switch value {
	case "True":
		return llvm.ConstInt(b.ctx.Int1Type(), 1, false), nil
	case "False":
		return llvm.ConstInt(b.ctx.Int1Type(), 0, false), nil
	default:
		return llvm.Value{}, fmt.Errorf("ir: %q is not a boolean literal, possible values: \"True\", \"False\"", value)
	}
}

// CreateCharacterConstant builds an i8 constant from a raw byte value.
func (b *Builder) CreateCharacterConstant(value byte) llvm.Value {
	return llvm.ConstInt(b.ctx.Int8Type(), uint64(value), false)
}

// CreateArrayConstant builds a constant array of elemType from values, all
// of which must already be constants.
func (b *Builder) CreateArrayConstant(elemType llvm.Type, values []llvm.Value) llvm.Value {
	return llvm.ConstArray(elemType, values)
}

// ConvertToFloat converts an integer-typed value to double, naming the
// instruction "conversion_to_float" as LlvmHelper::ConvertToFloat does.
func (b *Builder) ConvertToFloat(v llvm.Value) llvm.Value {
	return b.builder.CreateSIToFP(v, b.ctx.DoubleType(), "conversion_to_float")
}

// ConvertToInteger converts a float-typed value to i32, naming the
// instruction "conversion_to_integer" as LlvmHelper::ConvertToInteger does.
func (b *Builder) ConvertToInteger(v llvm.Value) llvm.Value {
	return b.builder.CreateFPToSI(v, b.ctx.Int32Type(), "conversion_to_integer")
}

// arith applies intOp or, after converting both operands to float, floatOp,
// depending on typ. This is the same type-dispatch shape as
// LlvmHelper::CreateAdd/CreateSub/CreateMul.
func (b *Builder) arith(
	typ, name string,
	lhs, rhs llvm.Value,
	intOp func(llvm.Value, llvm.Value, string) llvm.Value,
	floatOp func(llvm.Value, llvm.Value, string) llvm.Value,
) (llvm.Value, error) {
	switch typ {
	case TypeInteger:
		return intOp(lhs, rhs, name), nil
	case TypeFloat:
		return floatOp(b.ConvertToFloat(lhs), b.ConvertToFloat(rhs), name), nil
	default:
		return llvm.Value{}, fmt.Errorf("ir: unsupported arithmetic type %q", typ)
	}
}

// CreateAdd emits add/fadd depending on typ.
func (b *Builder) CreateAdd(typ string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	return b.arith(typ, name, lhs, rhs, b.builder.CreateAdd, b.builder.CreateFAdd)
}

// CreateSub emits sub/fsub depending on typ.
func (b *Builder) CreateSub(typ string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	return b.arith(typ, name, lhs, rhs, b.builder.CreateSub, b.builder.CreateFSub)
}

// CreateMul emits mul/fmul depending on typ.
func (b *Builder) CreateMul(typ string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	return b.arith(typ, name, lhs, rhs, b.builder.CreateMul, b.builder.CreateFMul)
}

// CreateSDiv emits fdiv for float operands only; integer division goes
// through CreateExactSDiv, mirroring LlvmHelper::CreateSDiv's float-only
// acceptance (the original reserves plain CreateSDiv for floating division
// and CreateExactSDiv for the truncating integer case).
func (b *Builder) CreateSDiv(typ string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	if typ != TypeFloat {
		return llvm.Value{}, fmt.Errorf("ir: CreateSDiv: unsupported type %q", typ)
	}
	return b.builder.CreateFDiv(b.ConvertToFloat(lhs), b.ConvertToFloat(rhs), name), nil
}

// CreateExactSDiv emits an exact signed integer division (sdiv exact) on the
// operands as given; integer is the only accepted type and no conversion is
// emitted.
func (b *Builder) CreateExactSDiv(typ string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	if typ != TypeInteger {
		return llvm.Value{}, fmt.Errorf("ir: CreateExactSDiv: unsupported type %q", typ)
	}
	return b.builder.CreateExactSDiv(lhs, rhs, name), nil
}

// CreateSRem emits a signed integer remainder; the modulo operator is
// integer-only.
func (b *Builder) CreateSRem(typ string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	if typ != TypeInteger {
		return llvm.Value{}, fmt.Errorf("ir: CreateSRem: unsupported type %q", typ)
	}
	return b.builder.CreateSRem(lhs, rhs, name), nil
}

// Relational predicates. typ selects the integer or float comparison
// instruction family, the same split genRelation (vslc/.../transform.go)
// makes on the operand's llvm.Type.
const (
	CmpEQ = "="
	CmpNE = "!="
	CmpLT = "<"
	CmpLE = "<="
	CmpGT = ">"
	CmpGE = ">="
)

// CreateCompare emits an icmp or fcmp instruction for op depending on typ.
func (b *Builder) CreateCompare(typ, op string, lhs, rhs llvm.Value, name string) (llvm.Value, error) {
	isFloat := typ == TypeFloat
	if isFloat {
		lhs = b.ConvertToFloat(lhs)
		rhs = b.ConvertToFloat(rhs)
	}
	var iPred llvm.IntPredicate
	var fPred llvm.FloatPredicate
	switch op {
	case CmpEQ:
		iPred, fPred = llvm.IntEQ, llvm.FloatOEQ
	case CmpNE:
		iPred, fPred = llvm.IntNE, llvm.FloatONE
	case CmpLT:
		iPred, fPred = llvm.IntSLT, llvm.FloatOLT
	case CmpLE:
		iPred, fPred = llvm.IntSLE, llvm.FloatOLE
	case CmpGT:
		iPred, fPred = llvm.IntSGT, llvm.FloatOGT
	case CmpGE:
		iPred, fPred = llvm.IntSGE, llvm.FloatOGE
	default:
		return llvm.Value{}, fmt.Errorf("ir: unsupported relational operator %q", op)
	}
	if isFloat {
		return b.builder.CreateFCmp(fPred, lhs, rhs, name), nil
	}
	return b.builder.CreateICmp(iPred, lhs, rhs, name), nil
}

// CreateAlloca allocates stack storage for typ, named name.
func (b *Builder) CreateAlloca(typ llvm.Type, name string) llvm.Value {
	return b.builder.CreateAlloca(typ, name)
}

// CreateStore stores val into ptr.
func (b *Builder) CreateStore(val, ptr llvm.Value) {
	b.builder.CreateStore(val, ptr)
}

// CreateLoad loads the value pointed to by ptr.
func (b *Builder) CreateLoad(ptr llvm.Value, name string) llvm.Value {
	return b.builder.CreateLoad(ptr.Type().ElementType(), ptr, name)
}

// AddGlobal declares a global of typ named name and gives it a zero
// initializer, mirroring genDeclarationGlobal's AddGlobal/SetInitializer
// pairing.
func (b *Builder) AddGlobal(typ llvm.Type, name string) llvm.Value {
	g := llvm.AddGlobal(b.module, typ, name)
	g.SetInitializer(llvm.ConstNull(typ))
	return g
}

// AddPrivateConstant declares a private, unnamed_addr constant global holding
// init, used for array literals (string literals go through
// CreateGlobalStringPtr).
func (b *Builder) AddPrivateConstant(name string, init llvm.Value) llvm.Value {
	g := llvm.AddGlobal(b.module, init.Type(), name)
	g.SetLinkage(llvm.PrivateLinkage)
	g.SetGlobalConstant(true)
	g.SetUnnamedAddr(true)
	g.SetInitializer(init)
	return g
}

// CreateGlobalStringPtr decodes the \n and \t escapes this language's string
// literals support and emits a global constant string, returning a pointer
// to its first byte.
func (b *Builder) CreateGlobalStringPtr(raw, name string) llvm.Value {
	return b.builder.CreateGlobalStringPtr(unescape(raw), name)
}

func unescape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				sb.WriteByte('\n')
				i++
				continue
			case 't':
				sb.WriteByte('\t')
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// CreateGEP emits a getelementptr with the given indices.
func (b *Builder) CreateGEP(elemType llvm.Type, ptr llvm.Value, indices []llvm.Value, name string) llvm.Value {
	return b.builder.CreateGEP(elemType, ptr, indices, name)
}

// CreateBitCast casts val to typ.
func (b *Builder) CreateBitCast(val llvm.Value, typ llvm.Type, name string) llvm.Value {
	return b.builder.CreateBitCast(val, typ, name)
}

// AddFunction declares (or, if already declared, returns) a function.
func (b *Builder) AddFunction(name string, retType llvm.Type, paramTypes []llvm.Type, variadic bool) llvm.Value {
	if existing := b.module.NamedFunction(name); !existing.IsNil() {
		return existing
	}
	ftyp := llvm.FunctionType(retType, paramTypes, variadic)
	return llvm.AddFunction(b.module, name, ftyp)
}

// AddBasicBlock appends a new basic block to fn.
func (b *Builder) AddBasicBlock(fn llvm.Value, name string) llvm.BasicBlock {
	return llvm.AddBasicBlock(fn, name)
}

// SetInsertPoint moves the insertion cursor to the end of bb.
func (b *Builder) SetInsertPoint(bb llvm.BasicBlock) {
	b.builder.SetInsertPointAtEnd(bb)
}

// CreateBr emits an unconditional branch to target.
func (b *Builder) CreateBr(target llvm.BasicBlock) {
	b.builder.CreateBr(target)
}

// CreateCondBr emits a conditional branch.
func (b *Builder) CreateCondBr(cond llvm.Value, thenBB, elseBB llvm.BasicBlock) {
	b.builder.CreateCondBr(cond, thenBB, elseBB)
}

// CreateCall calls fn with args.
func (b *Builder) CreateCall(fn llvm.Value, args []llvm.Value, name string) llvm.Value {
	return b.builder.CreateCall(fn.GlobalValueType(), fn, args, name)
}

// CreateRet emits a return instruction; a zero-value Value means "ret void".
func (b *Builder) CreateRet(v llvm.Value) {
	if v.IsNil() {
		b.builder.CreateRetVoid()
		return
	}
	b.builder.CreateRet(v)
}
