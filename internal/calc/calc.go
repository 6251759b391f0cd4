// Package calc folds constant arithmetic over the textual representation
// of operands. It is a direct port of
// original_source/Calculator/Calculator.cpp: each operation
// switches on the operand type, parses both sides, computes, and formats
// the result back to text.
package calc

import (
	"fmt"
	"strconv"
)

const (
	TypeInteger = "integer"
	TypeFloat   = "float"
)

// Add folds lhs + rhs for the given type.
func Add(lhs, rhs, typ string) (string, error) {
	return binary(lhs, rhs, typ, "adding",
		func(a, b int) int { return a + b },
		func(a, b float64) float64 { return a + b })
}

// Sub folds lhs - rhs for the given type.
func Sub(lhs, rhs, typ string) (string, error) {
	return binary(lhs, rhs, typ, "subtracting",
		func(a, b int) int { return a - b },
		func(a, b float64) float64 { return a - b })
}

// Mul folds lhs * rhs for the given type.
func Mul(lhs, rhs, typ string) (string, error) {
	return binary(lhs, rhs, typ, "multiplying",
		func(a, b int) int { return a * b },
		func(a, b float64) float64 { return a * b })
}

// IntDiv folds integer division of lhs by rhs. It always truncates toward
// zero, matching Calculator::IntegerDivision, and always yields an integer
// result regardless of the declared type, mirroring the original's
// behavior of routing both the integer and float cases through stoi.
func IntDiv(lhs, rhs, typ string) (string, error) {
	if typ != TypeInteger && typ != TypeFloat {
		return "", fmt.Errorf("unsupported type for integer dividing: %q", typ)
	}
	r, err := strconv.Atoi(rhs)
	if err != nil {
		return "", fmt.Errorf("parse rhs %q: %w", rhs, err)
	}
	if r == 0 {
		return "", fmt.Errorf("cannot divide by zero")
	}
	l, err := strconv.Atoi(lhs)
	if err != nil {
		return "", fmt.Errorf("parse lhs %q: %w", lhs, err)
	}
	return strconv.Itoa(l / r), nil
}

// Div folds regular (always-float) division of lhs by rhs. Division by
// zero is rejected here too, not just in IntDiv: it's the one defined
// error shared by every arithmetic operation, regardless of whether the
// result type is integer or float.
func Div(lhs, rhs, typ string) (string, error) {
	if typ != TypeInteger && typ != TypeFloat {
		return "", fmt.Errorf("unsupported type for dividing: %q", typ)
	}
	r, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return "", fmt.Errorf("parse rhs %q: %w", rhs, err)
	}
	if r == 0 {
		return "", fmt.Errorf("cannot divide by zero")
	}
	l, err := strconv.ParseFloat(lhs, 64)
	if err != nil {
		return "", fmt.Errorf("parse lhs %q: %w", lhs, err)
	}
	return formatFloat(l / r), nil
}

// Mod folds lhs % rhs, requiring integer operands.
func Mod(lhs, rhs, typ string) (string, error) {
	if typ != TypeInteger && typ != TypeFloat {
		return "", fmt.Errorf("unsupported type for moduling: %q", typ)
	}
	l, err := strconv.Atoi(lhs)
	if err != nil {
		return "", fmt.Errorf("parse lhs %q: %w", lhs, err)
	}
	r, err := strconv.Atoi(rhs)
	if err != nil {
		return "", fmt.Errorf("parse rhs %q: %w", rhs, err)
	}
	if r == 0 {
		return "", fmt.Errorf("cannot divide by zero")
	}
	return strconv.Itoa(l % r), nil
}

func binary(lhs, rhs, typ, verb string, intOp func(int, int) int, floatOp func(float64, float64) float64) (string, error) {
	switch typ {
	case TypeInteger:
		l, err := strconv.Atoi(lhs)
		if err != nil {
			return "", fmt.Errorf("parse lhs %q: %w", lhs, err)
		}
		r, err := strconv.Atoi(rhs)
		if err != nil {
			return "", fmt.Errorf("parse rhs %q: %w", rhs, err)
		}
		return strconv.Itoa(intOp(l, r)), nil
	case TypeFloat:
		l, err := strconv.ParseFloat(lhs, 64)
		if err != nil {
			return "", fmt.Errorf("parse lhs %q: %w", lhs, err)
		}
		r, err := strconv.ParseFloat(rhs, 64)
		if err != nil {
			return "", fmt.Errorf("parse rhs %q: %w", rhs, err)
		}
		return formatFloat(floatOp(l, r)), nil
	default:
		return "", fmt.Errorf("unsupported type for %v: %q", verb, typ)
	}
}

// formatFloat mimics std::to_string(float)'s fixed six-decimal formatting.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
