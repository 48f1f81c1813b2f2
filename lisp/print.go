// Copyright © 2018 The ELPS authors

package lisp

import (
	"strconv"
	"strings"
)

// String implements toylisp's structural printer.
func (v *LVal) String() string {
	var buf strings.Builder
	writeLVal(&buf, v)
	return buf.String()
}

func writeLVal(buf *strings.Builder, v *LVal) {
	switch v.Type {
	case LNil:
		buf.WriteString("()")
	case LNumber:
		buf.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case LAtom:
		buf.WriteString(v.Str)
	case LString:
		writeQuotedString(buf, v.Str)
	case LPrimitive:
		buf.WriteString("<primitive:")
		buf.WriteString(primitiveName(v.Prim))
		buf.WriteString(">")
	case LCons:
		writeCons(buf, v)
	case LClosure:
		buf.WriteString("<closure>")
	case LMacro:
		buf.WriteString("<macro>")
	case LError:
		buf.WriteString(v.Str)
	case LUndefined:
		buf.WriteString("<undefined>")
	default:
		buf.WriteString("<invalid>")
	}
}

func writeCons(buf *strings.Builder, v *LVal) {
	buf.WriteByte('(')
	first := true
	for v.Type == LCons {
		if !first {
			buf.WriteByte(' ')
		}
		first = false
		writeLVal(buf, v.Car)
		v = v.Cdr
	}
	if !IsNil(v) {
		buf.WriteString(" . ")
		writeLVal(buf, v)
	}
	buf.WriteByte(')')
}

func writeQuotedString(buf *strings.Builder, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func primitiveName(idx int) string {
	if idx < 0 || idx >= len(Primitives) {
		return "?"
	}
	return Primitives[idx].Name
}
