package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/philipp01105/drainlog/core"
)

// Expand appends format to dst, substituting each conversion with the next
// argument. "%%" yields a literal percent. An unrecognised conversion ends
// the line: it and everything after it are dropped. When the arguments run
// out, the rest of format is copied verbatim; surplus arguments are ignored.
//
// limit caps len(dst) after expansion, prefix included. Output beyond it is
// silently cut. A non-positive limit disables the cap.
func Expand(dst []byte, format string, args []core.Arg, limit int) []byte {
	next := 0
	for i := 0; i < len(format); {
		if limit > 0 && len(dst) >= limit {
			break
		}

		pct := strings.IndexByte(format[i:], '%')
		if pct < 0 {
			dst = append(dst, format[i:]...)
			break
		}
		dst = append(dst, format[i:i+pct]...)
		i += pct

		if i+1 < len(format) && format[i+1] == '%' {
			dst = append(dst, '%')
			i += 2
			continue
		}

		end, ok := ScanVerb(format, i)
		if !ok {
			break
		}
		if next >= len(args) {
			dst = append(dst, format[i:]...)
			break
		}
		dst = appendArg(dst, format[i:end], args[next])
		next++
		i = end
	}
	return Truncate(dst, limit)
}

// appendArg renders one argument for the conversion spec, e.g. "%-8s".
func appendArg(dst []byte, spec string, a core.Arg) []byte {
	if a.Kind == core.AppenderKind {
		if a.Appender == nil {
			return dst
		}
		return a.Appender.AppendLog(dst)
	}

	verb := spec[len(spec)-1]
	mods := cleanModifiers(spec[1 : len(spec)-1])

	switch verb {
	case 'n':
		return dst

	case 'd', 'i':
		if mods == "" && a.Kind == core.IntKind {
			return strconv.AppendInt(dst, a.Int64, 10)
		}
		if a.Kind == core.StringKind {
			return appendf(dst, mods, 's', a.Str)
		}
		if a.Kind == core.UintKind || a.Kind == core.PointerKind {
			return appendf(dst, mods, 'd', a.Uint64)
		}
		return appendf(dst, mods, 'd', asInt(a))

	case 'u', 'o', 'x', 'X':
		if a.Kind == core.StringKind {
			return appendf(dst, mods, 's', a.Str)
		}
		goVerb := verb
		if verb == 'u' {
			goVerb = 'd'
		}
		return appendf(dst, mods, goVerb, asUint(a))

	case 'f', 'F', 'e', 'E', 'g', 'G':
		if a.Kind == core.StringKind {
			return appendf(dst, mods, 's', a.Str)
		}
		return appendf(dst, mods, verb, asFloat(a))

	case 'a', 'A':
		if a.Kind == core.StringKind {
			return appendf(dst, mods, 's', a.Str)
		}
		// Go's %x on a float is C's %a
		goVerb := byte('x')
		if verb == 'A' {
			goVerb = 'X'
		}
		return appendf(dst, mods, goVerb, asFloat(a))

	case 'c':
		switch a.Kind {
		case core.StringKind:
			if a.Str == "" {
				return dst
			}
			r, _ := utf8.DecodeRuneInString(a.Str)
			return appendf(dst, mods, 'c', r)
		case core.FloatKind:
			return appendf(dst, mods, 'c', rune(int64(a.Float64)))
		default:
			return appendf(dst, mods, 'c', rune(asInt(a)))
		}

	case 'p':
		var s string
		if v := asUint(a); v == 0 {
			s = "(nil)"
		} else {
			s = "0x" + strconv.FormatUint(v, 16)
		}
		return appendf(dst, mods, 's', s)

	default: // 's'
		if a.Kind == core.StringKind && mods == "" {
			return append(dst, a.Str...)
		}
		return appendf(dst, mods, 's', asString(a))
	}
}

func appendf(dst []byte, mods string, verb byte, v interface{}) []byte {
	spec := make([]byte, 0, len(mods)+2)
	spec = append(spec, '%')
	spec = append(spec, mods...)
	spec = append(spec, verb)
	return fmt.Appendf(dst, string(spec), v)
}

// cleanModifiers strips C length modifiers and '*', keeping flags, width
// and precision that fmt understands.
func cleanModifiers(mods string) string {
	if mods == "" {
		return mods
	}
	clean := true
	for i := 0; i < len(mods); i++ {
		if isLength(mods[i]) {
			clean = false
			break
		}
	}
	if clean {
		return mods
	}
	b := make([]byte, 0, len(mods))
	for i := 0; i < len(mods); i++ {
		if !isLength(mods[i]) {
			b = append(b, mods[i])
		}
	}
	return string(b)
}

func asInt(a core.Arg) int64 {
	switch a.Kind {
	case core.UintKind, core.PointerKind:
		return int64(a.Uint64)
	case core.FloatKind:
		return int64(a.Float64)
	case core.IntKind, core.CharKind, core.BoolKind:
		return a.Int64
	default:
		return 0
	}
}

// asUint reinterprets signed values the way C's unsigned conversions do
func asUint(a core.Arg) uint64 {
	switch a.Kind {
	case core.UintKind, core.PointerKind:
		return a.Uint64
	case core.FloatKind:
		return uint64(int64(a.Float64))
	case core.IntKind, core.CharKind, core.BoolKind:
		return uint64(a.Int64)
	default:
		return 0
	}
}

func asFloat(a core.Arg) float64 {
	switch a.Kind {
	case core.FloatKind:
		return a.Float64
	case core.UintKind, core.PointerKind:
		return float64(a.Uint64)
	case core.IntKind, core.CharKind, core.BoolKind:
		return float64(a.Int64)
	default:
		return 0
	}
}

func asString(a core.Arg) string {
	switch a.Kind {
	case core.StringKind:
		return a.Str
	case core.IntKind:
		return strconv.FormatInt(a.Int64, 10)
	case core.UintKind:
		return strconv.FormatUint(a.Uint64, 10)
	case core.FloatKind:
		return strconv.FormatFloat(a.Float64, 'g', -1, 64)
	case core.CharKind:
		return string(rune(a.Int64))
	case core.BoolKind:
		return strconv.FormatBool(a.Int64 == 1)
	case core.PointerKind:
		return "0x" + strconv.FormatUint(a.Uint64, 16)
	default:
		if a.Any == nil {
			return "<nil>"
		}
		return fmt.Sprint(a.Any)
	}
}
