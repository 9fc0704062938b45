// Package emitter contains the two parallel walks over a TOML value tree:
// the type-tree emitter, declaring one named type per node, and the
// value-tree emitter, producing the single literal expression constructing an
// instance of the root type. Both render type names through the same
// namespace stack, which is what guarantees that every type the value
// expression references was declared at exactly that path.
package emitter

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vovanwin/statictoml/internal/ident"
	"github.com/vovanwin/statictoml/internal/model"
)

// ErrNameCollision marks documents whose key paths flatten to the same type
// name, which would otherwise declare one identifier twice.
var ErrNameCollision = errors.New("type name collision")

// Options modulates one emission. ValuesIdent empty means "values";
// PreferSlices is the resolved value (default true).
type Options struct {
	Prefix       string
	Suffix       string
	ValuesIdent  string
	PreferSlices bool
	Cow          bool
	Exported     bool
	Derives      []string
}

func (o Options) valuesIdent() string {
	if o.ValuesIdent == "" {
		return "values"
	}
	return o.ValuesIdent
}

// RootTypeName returns the name of the type generated for the document
// root, the same name both emitters produce for an empty namespace stack.
func RootTypeName(rootKey string, o Options) (string, error) {
	seg, err := ident.Module(rootKey)
	if err != nil {
		return "", err
	}
	return typeName([]string{seg}, o), nil
}

// typeName renders the flattened type name for the namespace stack: the
// verbatim prefix, the Pascal form of every segment, the verbatim suffix.
// Unexported emissions lowercase the first rune of the whole name.
func typeName(stack []string, o Options) string {
	var b strings.Builder
	b.WriteString(o.Prefix)
	for _, seg := range stack {
		b.WriteString(ident.ToPascal(seg))
	}
	b.WriteString(o.Suffix)
	name := b.String()
	if !o.Exported && name != "" {
		runes := []rune(name)
		runes[0] = []rune(strings.ToLower(string(runes[0])))[0]
		name = string(runes)
	}
	return name
}

// fieldName renders a record field name for a module segment. Fields are
// always exported so that derive tags (reflection-based encoders) can see
// them; same-package access is unaffected either way.
func fieldName(seg string) string {
	return ident.ToPascal(seg)
}

// goScalar maps a scalar kind to the aliased Go type. Datetimes are opaque
// textual literals.
func goScalar(k model.Kind) string {
	switch k {
	case model.KindString, model.KindDatetime:
		return "string"
	case model.KindInteger:
		return "int64"
	case model.KindFloat:
		return "float64"
	case model.KindBool:
		return "bool"
	default:
		return ""
	}
}

// scalarLiteral renders a scalar value as a Go literal token. Float specials
// have no literal form and render as math calls.
func scalarLiteral(v *model.Value) string {
	switch v.Kind {
	case model.KindString:
		return strconv.Quote(v.Str)
	case model.KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case model.KindFloat:
		return floatLiteral(v.Float)
	case model.KindBool:
		return strconv.FormatBool(v.Bool)
	case model.KindDatetime:
		return strconv.Quote(v.Datetime)
	default:
		return ""
	}
}

func floatLiteral(f float64) string {
	if f != f {
		return "math.NaN()"
	}
	if f > 0 && f*2 == f {
		return "math.Inf(1)"
	}
	if f < 0 && f*2 == f {
		return "math.Inf(-1)"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// elementKey returns the synthesized key for array position i, or the shared
// representative key for homogeneous arrays.
func elementKey(o Options, i int, homogeneous bool) string {
	if homogeneous {
		return o.valuesIdent()
	}
	return o.valuesIdent() + strconv.Itoa(i)
}

// isScalar reports whether v renders as a bare literal token.
func isScalar(v *model.Value) bool {
	switch v.Kind {
	case model.KindArray, model.KindTable:
		return false
	}
	return true
}
