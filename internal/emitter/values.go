package emitter

import (
	"strings"

	"github.com/vovanwin/statictoml/internal/ident"
	"github.com/vovanwin/statictoml/internal/model"
)

// Value walks the value tree and renders the single expression constructing
// an instance of the root type. The walk mirrors Types exactly: same keys,
// same namespace stack, same validation, so both emitters fail identically
// on a bad key and every referenced type exists at the referenced path.
func Value(v *model.Value, rootKey string, o Options) (string, error) {
	w := &valueWriter{o: o}
	return w.emit(v, rootKey, nil, 0)
}

type valueWriter struct {
	o Options
}

func (w *valueWriter) emit(v *model.Value, key string, stack []string, depth int) (string, error) {
	seg, err := ident.Module(key)
	if err != nil {
		return "", err
	}
	stack = append(stack, seg)

	switch v.Kind {
	case model.KindTable:
		return w.emitTable(v.Table, stack, depth)
	case model.KindArray:
		return w.emitArray(v.Array, stack, depth)
	default:
		return scalarLiteral(v), nil
	}
}

func (w *valueWriter) emitTable(t *model.Table, stack []string, depth int) (string, error) {
	name := typeName(stack, w.o)
	if t.Len() == 0 {
		return name + "{}", nil
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("{\n")
	for _, k := range t.Keys() {
		seg, err := ident.Module(k)
		if err != nil {
			return "", err
		}
		child, _ := t.Get(k)
		expr, err := w.emit(child, k, stack, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(indent(depth + 1))
		b.WriteString(fieldName(seg))
		b.WriteString(": ")
		b.WriteString(expr)
		b.WriteString(",\n")
	}
	b.WriteString(indent(depth))
	b.WriteString("}")
	return b.String(), nil
}

func (w *valueWriter) emitArray(array []*model.Value, stack []string, depth int) (string, error) {
	homogeneous := model.Classify(array, w.o.PreferSlices) == model.Homogeneous
	name := typeName(stack, w.o)

	exprs := make([]string, 0, len(array))
	flat := true
	for i, elem := range array {
		if !isScalar(elem) {
			flat = false
		}
		expr, err := w.emit(elem, elementKey(w.o, i, homogeneous), stack, depth+1)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, expr)
	}

	// Scalar-only sequences stay on one line; anything nested gets one
	// element per line so the generated literal survives review.
	var b strings.Builder
	b.WriteString(name)
	if len(exprs) == 0 {
		b.WriteString("{}")
		return b.String(), nil
	}
	if flat {
		b.WriteString("{")
		b.WriteString(strings.Join(exprs, ", "))
		b.WriteString("}")
		return b.String(), nil
	}
	b.WriteString("{\n")
	for _, expr := range exprs {
		b.WriteString(indent(depth + 1))
		b.WriteString(expr)
		b.WriteString(",\n")
	}
	b.WriteString(indent(depth))
	b.WriteString("}")
	return b.String(), nil
}

func indent(depth int) string {
	return strings.Repeat("\t", depth)
}
