package ir

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// Engine wraps an llvm.ExecutionEngine for the JIT finalize/run handoff:
// handing the module to an execution engine that can finalize and run a
// function by name. It takes ownership of the module it is created from;
// Builder no longer owns that module afterward.
type Engine struct {
	engine llvm.ExecutionEngine
}

// Finalize takes ownership of b's module into a new MCJIT execution engine.
// b must not be used again after Finalize succeeds.
func Finalize(b *Builder) (*Engine, error) {
	llvm.LinkInMCJIT()
	if err := llvm.InitializeNativeTarget(); err != nil {
		return nil, fmt.Errorf("ir: initialize native target: %w", err)
	}
	if err := llvm.InitializeNativeAsmPrinter(); err != nil {
		return nil, fmt.Errorf("ir: initialize native asm printer: %w", err)
	}

	opts := llvm.NewMCJITCompilerOptions()
	engine, err := llvm.NewMCJITCompiler(b.module, opts)
	if err != nil {
		return nil, fmt.Errorf("ir: create JIT engine: %w", err)
	}

	b.builder.Dispose()
	return &Engine{engine: engine}, nil
}

// Run executes the named function with no arguments and returns its integer
// result, matching the emitted program's implicit `main`-style entry point:
// the main IR basic block always terminates with a return of integer 0.
func (e *Engine) Run(functionName string) (int64, error) {
	fn := e.engine.FindFunction(functionName)
	if fn.IsNil() {
		return 0, fmt.Errorf("ir: function %q not found in module", functionName)
	}
	result := e.engine.RunFunction(fn, nil)
	return result.Int(true), nil
}

// Dispose releases the execution engine and, with it, its module.
func (e *Engine) Dispose() {
	e.engine.Dispose()
}
