package driver

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"calvin/internal/ast"
	"calvin/internal/diag"
	"calvin/internal/script"
	"calvin/internal/types"
)

// typeOf resolves a type spelling such as i32, char[4] or i8[].
func (rp *replayer) typeOf(d *script.Datum) (*types.Meta, error) {
	if d.Kind != script.KindSymbol || !validType(d.Text) {
		return nil, diag.Errorf(diag.SynBadLiteral, "unknown type %s", d.Text).With(d.Text).At(d.Span)
	}
	return rp.b.Types.Intern(d.Text), nil
}

func validType(s string) bool {
	for strings.HasSuffix(s, "]") {
		open := strings.LastIndex(s, "[")
		if open <= 0 {
			return false
		}
		if n := s[open+1 : len(s)-1]; n != "" {
			if v, err := strconv.Atoi(n); err != nil || v < 0 {
				return false
			}
		}
		s = s[:open]
	}
	return s == "void" || types.TagOf(s) != types.Void
}

// literal types a bare atom: integers are i32 (i64 when they do not
// fit), reals r64, true/false bool and quoted characters char.
func (rp *replayer) literal(d *script.Datum) (ast.NodeID, error) {
	bi := rp.b.Types.Builtins()
	switch d.Kind {
	case script.KindInt:
		v, err := strconv.ParseInt(d.Text, 0, 64)
		if err != nil {
			return ast.NoNodeID, badLiteral(d, err)
		}
		if int64(int32(v)) == v {
			return ast.NewLiteral(rp.b, bi.I32, int32(v), d.Span), nil
		}
		return ast.NewLiteral(rp.b, bi.I64, v, d.Span), nil
	case script.KindReal:
		return rp.typedLiteral(bi.R64, d)
	case script.KindChar:
		return rp.typedLiteral(bi.Char, d)
	}
	return rp.typedLiteral(bi.Bool, d)
}

// typedLiteral parses d as a value of meta. The Go type of the payload
// follows the tag width.
func (rp *replayer) typedLiteral(meta *types.Meta, d *script.Datum) (ast.NodeID, error) {
	b, text, sp := rp.b, d.Text, d.Span
	var (
		id  ast.NodeID
		err error
	)
	switch meta.Type() {
	case types.Bool:
		var v bool
		if v, err = strconv.ParseBool(text); err == nil {
			id = ast.NewLiteral(b, meta, v, sp)
		}
	case types.Char:
		if r := []rune(text); d.Kind == script.KindChar || len(r) == 1 {
			if r[0] < utf8.RuneSelf {
				id = ast.NewLiteral(b, meta, byte(r[0]), sp)
			} else {
				id = ast.NewLiteral(b, meta, r[0], sp)
			}
		} else {
			var v uint64
			if v, err = strconv.ParseUint(text, 0, 8); err == nil {
				id = ast.NewLiteral(b, meta, uint8(v), sp)
			}
		}
	case types.U8, types.U16, types.U32, types.U64:
		var v uint64
		if v, err = strconv.ParseUint(text, 0, meta.ByteSize()*8); err == nil {
			switch meta.Type() {
			case types.U8:
				id = ast.NewLiteral(b, meta, uint8(v), sp)
			case types.U16:
				id = ast.NewLiteral(b, meta, uint16(v), sp)
			case types.U32:
				id = ast.NewLiteral(b, meta, uint32(v), sp)
			default:
				id = ast.NewLiteral(b, meta, v, sp)
			}
		}
	case types.I8, types.I16, types.I32, types.I64:
		var v int64
		if v, err = strconv.ParseInt(text, 0, meta.ByteSize()*8); err == nil {
			switch meta.Type() {
			case types.I8:
				id = ast.NewLiteral(b, meta, int8(v), sp)
			case types.I16:
				id = ast.NewLiteral(b, meta, int16(v), sp)
			case types.I32:
				id = ast.NewLiteral(b, meta, int32(v), sp)
			default:
				id = ast.NewLiteral(b, meta, v, sp)
			}
		}
	case types.R32, types.X32:
		var v float64
		if v, err = strconv.ParseFloat(text, 32); err == nil {
			if meta.Type() == types.X32 {
				id = ast.NewLiteral(b, meta, complex(float32(v), 0), sp)
			} else {
				id = ast.NewLiteral(b, meta, float32(v), sp)
			}
		}
	case types.R64, types.X64:
		var v float64
		if v, err = strconv.ParseFloat(text, 64); err == nil {
			if meta.Type() == types.X64 {
				id = ast.NewLiteral(b, meta, complex(v, 0), sp)
			} else {
				id = ast.NewLiteral(b, meta, v, sp)
			}
		}
	default:
		return ast.NoNodeID, diag.Errorf(diag.SynBadLiteral, "no literals of type %s", meta).
			With(meta.String()).At(sp)
	}
	if err != nil {
		return ast.NoNodeID, badLiteral(d, err)
	}
	return id, nil
}

func badLiteral(d *script.Datum, err error) error {
	return diag.Errorf(diag.SynBadLiteral, "bad literal %s: %v", d.Text, err).With(d.Text).At(d.Span)
}
