package core

import (
	"fmt"
	"reflect"
	"time"
)

// ArgKind identifies which member of an Arg holds its value
type ArgKind uint8

const (
	IntKind ArgKind = iota
	UintKind
	FloatKind
	StringKind
	CharKind
	PointerKind
	BoolKind
	AppenderKind
	AnyKind
)

// Appender is implemented by values that render themselves into a log line.
// The rendering is appended as-is; the verb that consumed the argument only
// decides that it was consumed.
type Appender interface {
	AppendLog(dst []byte) []byte
}

// Arg is one positional argument of a format call. Numeric values are kept
// in fixed-size members so common arguments never escape to the heap.
type Arg struct {
	Kind     ArgKind
	Int64    int64
	Uint64   uint64
	Float64  float64
	Str      string
	Appender Appender
	Any      interface{}
}

// Int creates an int argument
func Int(v int) Arg {
	return Arg{Kind: IntKind, Int64: int64(v)}
}

// Int64 creates an int64 argument
func Int64(v int64) Arg {
	return Arg{Kind: IntKind, Int64: v}
}

// Uint creates an unsigned argument
func Uint(v uint64) Arg {
	return Arg{Kind: UintKind, Uint64: v}
}

// Float creates a float64 argument
func Float(v float64) Arg {
	return Arg{Kind: FloatKind, Float64: v}
}

// Str creates a string argument
func Str(v string) Arg {
	return Arg{Kind: StringKind, Str: v}
}

// Char creates a character argument
func Char(r rune) Arg {
	return Arg{Kind: CharKind, Int64: int64(r)}
}

// Bool creates a bool argument
func Bool(v bool) Arg {
	a := Arg{Kind: BoolKind}
	if v {
		a.Int64 = 1
	}
	return a
}

// Ptr creates a pointer argument from any pointer-like value. Non-pointer
// values are recorded as a nil pointer.
func Ptr(v interface{}) Arg {
	a := Arg{Kind: PointerKind}
	if v == nil {
		return a
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		a.Uint64 = uint64(rv.Pointer())
	case reflect.Uintptr:
		a.Uint64 = uint64(rv.Uint())
	}
	return a
}

// Custom creates an argument that renders itself
func Custom(v Appender) Arg {
	return Arg{Kind: AppenderKind, Appender: v}
}

// Any classifies v into the narrowest argument kind. It is the fallback
// used by bridges that receive untyped values.
func Any(v interface{}) Arg {
	switch x := v.(type) {
	case nil:
		return Arg{Kind: AnyKind}
	case Arg:
		return x
	case Appender:
		return Custom(x)
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	case int:
		return Int(x)
	case int8:
		return Int64(int64(x))
	case int16:
		return Int64(int64(x))
	case int32:
		return Int64(int64(x))
	case int64:
		return Int64(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case uintptr:
		return Arg{Kind: PointerKind, Uint64: uint64(x)}
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case time.Duration:
		return Str(x.String())
	case error:
		return Str(x.Error())
	case fmt.Stringer:
		return Str(x.String())
	default:
		return Arg{Kind: AnyKind, Any: v}
	}
}

// Value returns the argument as a plain Go value suitable for fmt.
func (a Arg) Value() interface{} {
	switch a.Kind {
	case IntKind:
		return a.Int64
	case UintKind:
		return a.Uint64
	case FloatKind:
		return a.Float64
	case StringKind:
		return a.Str
	case CharKind:
		return rune(a.Int64)
	case PointerKind:
		return uintptr(a.Uint64)
	case BoolKind:
		return a.Int64 == 1
	case AppenderKind:
		if a.Appender == nil {
			return ""
		}
		return string(a.Appender.AppendLog(nil))
	default:
		return a.Any
	}
}
