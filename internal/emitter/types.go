package emitter

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vovanwin/statictoml/internal/ident"
	"github.com/vovanwin/statictoml/internal/model"
)

// Types walks the value tree and renders the full type hierarchy: one
// declared type per node, depth first, parents before children. rootKey is
// the root module segment source (usually the resolved root_mod).
func Types(v *model.Value, rootKey string, o Options) (string, error) {
	w := &typeWriter{o: o, seen: make(map[string]string)}
	if err := w.emit(v, rootKey, nil, nil); err != nil {
		return "", err
	}
	return w.b.String(), nil
}

type typeWriter struct {
	b strings.Builder
	o Options
	// seen maps each flattened type name to the dotted key path that
	// declared it. Flattening is not injective (`a_b.c` and `a.b_c` share a
	// name), so a second sighting is an error, never a second declaration.
	seen map[string]string
}

// emit declares the type for v at parent path stack under key, then recurses
// into children. Key validation runs before any shaping so that no partial
// output is produced for an invalid key. path holds the raw keys from the
// root, for error text.
func (w *typeWriter) emit(v *model.Value, key string, stack, path []string) error {
	seg, err := ident.Module(key)
	if err != nil {
		return err
	}
	stack = append(stack, seg)
	path = append(path, key)
	name := typeName(stack, w.o)

	dotted := strings.Join(path, ".")
	if prev, ok := w.seen[name]; ok {
		return errors.Mark(
			errors.Newf("`%s` and `%s` both flatten to type name `%s`", prev, dotted, name),
			ErrNameCollision)
	}
	w.seen[name] = dotted

	switch v.Kind {
	case model.KindTable:
		return w.emitTable(v.Table, name, stack, path)
	case model.KindArray:
		return w.emitArray(v.Array, name, stack, path)
	default:
		fmt.Fprintf(&w.b, "type %s = %s\n\n", name, goScalar(v.Kind))
		return nil
	}
}

func (w *typeWriter) emitTable(t *model.Table, name string, stack, path []string) error {
	if t.Len() == 0 {
		fmt.Fprintf(&w.b, "type %s struct{}\n\n", name)
		return nil
	}

	fmt.Fprintf(&w.b, "type %s struct {\n", name)
	for _, k := range t.Keys() {
		seg, err := ident.Module(k)
		if err != nil {
			return err
		}
		for _, line := range commentLines(t.Comment(k)) {
			fmt.Fprintf(&w.b, "\t// %s\n", line)
		}
		fieldType := typeName(append(stack, seg), w.o)
		fmt.Fprintf(&w.b, "\t%s %s%s\n", fieldName(seg), fieldType, deriveTags(w.o.Derives, k))
	}
	w.b.WriteString("}\n\n")

	for _, k := range t.Keys() {
		child, _ := t.Get(k)
		if err := w.emit(child, k, stack, path); err != nil {
			return err
		}
	}
	return nil
}

func (w *typeWriter) emitArray(array []*model.Value, name string, stack, path []string) error {
	if model.Classify(array, w.o.PreferSlices) == model.Homogeneous {
		if len(array) == 0 {
			fmt.Fprintf(&w.b, "type %s = [0]struct{}\n\n", name)
			return nil
		}
		seg, err := ident.Module(w.o.valuesIdent())
		if err != nil {
			return err
		}
		elem := typeName(append(stack, seg), w.o)
		if w.o.Cow {
			fmt.Fprintf(&w.b, "type %s = []%s\n\n", name, elem)
		} else {
			fmt.Fprintf(&w.b, "type %s = [%d]%s\n\n", name, len(array), elem)
		}
		// One representative child namespace; element 0 stands for all.
		return w.emit(array[0], w.o.valuesIdent(), stack, path)
	}

	fmt.Fprintf(&w.b, "type %s struct {\n", name)
	for i := range array {
		seg, err := ident.Module(elementKey(w.o, i, false))
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.b, "\t%s %s\n", fieldName(seg), typeName(append(stack, seg), w.o))
	}
	w.b.WriteString("}\n\n")

	for i, elem := range array {
		if err := w.emit(elem, elementKey(w.o, i, false), stack, path); err != nil {
			return err
		}
	}
	return nil
}

// deriveTags renders the struct tag attaching every derive key to the raw
// TOML key, e.g. `json:"type" yaml:"type"`.
func deriveTags(derives []string, rawKey string) string {
	if len(derives) == 0 {
		return ""
	}
	parts := make([]string, 0, len(derives))
	for _, d := range derives {
		parts = append(parts, fmt.Sprintf("%s:%q", d, rawKey))
	}
	return " `" + strings.Join(parts, " ") + "`"
}

func commentLines(c string) []string {
	if c == "" {
		return nil
	}
	return strings.Split(c, "\n")
}
