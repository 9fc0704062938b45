// Package parser decodes TOML documents into the order-preserving value tree
// the emitters consume. The standard decoders hand back Go maps and lose the
// document's key order, which the generator needs for field ordering, so this
// package walks the document expression by expression instead.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/vovanwin/statictoml/internal/model"
)

// Parse decodes data as a TOML document. The result is always a table value.
// Key comments found in the document are attached to their tables.
func Parse(data []byte) (*model.Value, error) {
	root := model.NewTable()
	p := &unstable.Parser{}
	p.Reset(data)

	// current is the table the active [header] selects; key-values land here.
	current := root
	for p.NextExpression() {
		node := p.Expression()
		switch node.Kind {
		case unstable.Table:
			t, err := openTable(root, keyParts(node.Key()))
			if err != nil {
				return nil, err
			}
			current = t
		case unstable.ArrayTable:
			t, err := appendArrayTable(root, keyParts(node.Key()))
			if err != nil {
				return nil, err
			}
			current = t
		case unstable.KeyValue:
			if err := setKeyValue(current, node); err != nil {
				return nil, err
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, errors.Wrap(err, "toml syntax")
	}

	doc := &model.Value{Kind: model.KindTable, Table: root}
	attachComments(doc, extractComments(data), nil)
	return doc, nil
}

// keyParts collects the dotted key parts of a Table, ArrayTable or KeyValue
// expression in document order.
func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// openTable descends from root along path, creating tables as needed, and
// returns the table the final part names. Descending through an array of
// tables continues in its last element, per TOML semantics.
func openTable(root *model.Table, path []string) (*model.Table, error) {
	t := root
	for i, part := range path {
		v, ok := t.Get(part)
		if !ok {
			nt := model.NewTable()
			t.Set(part, &model.Value{Kind: model.KindTable, Table: nt})
			t = nt
			continue
		}
		switch v.Kind {
		case model.KindTable:
			t = v.Table
		case model.KindArray:
			if len(v.Array) == 0 || v.Array[len(v.Array)-1].Kind != model.KindTable {
				return nil, errors.Newf("key `%s` is not a table", strings.Join(path[:i+1], "."))
			}
			t = v.Array[len(v.Array)-1].Table
		default:
			return nil, errors.Newf("key `%s` is not a table", strings.Join(path[:i+1], "."))
		}
	}
	return t, nil
}

// appendArrayTable appends a fresh table to the array of tables path names,
// creating the array on first sight, and returns the new element.
func appendArrayTable(root *model.Table, path []string) (*model.Table, error) {
	parent, err := openTable(root, path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	last := path[len(path)-1]
	elem := model.NewTable()
	v, ok := parent.Get(last)
	if !ok {
		parent.Set(last, &model.Value{
			Kind:  model.KindArray,
			Array: []*model.Value{{Kind: model.KindTable, Table: elem}},
		})
		return elem, nil
	}
	if v.Kind != model.KindArray {
		return nil, errors.Newf("key `%s` is not an array of tables", strings.Join(path, "."))
	}
	v.Array = append(v.Array, &model.Value{Kind: model.KindTable, Table: elem})
	return elem, nil
}

// setKeyValue stores a key = value expression in t, creating intermediate
// tables for dotted keys.
func setKeyValue(t *model.Table, node *unstable.Node) error {
	path := keyParts(node.Key())
	parent, err := openTable(t, path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	if _, ok := parent.Get(last); ok {
		return errors.Newf("duplicate key `%s`", strings.Join(path, "."))
	}
	v, err := buildValue(node.Value())
	if err != nil {
		return err
	}
	parent.Set(last, v)
	return nil
}

// buildValue converts a value expression into the model tree.
func buildValue(node *unstable.Node) (*model.Value, error) {
	switch node.Kind {
	case unstable.String:
		return &model.Value{Kind: model.KindString, Str: string(node.Data)}, nil
	case unstable.Integer:
		i, err := parseInteger(string(node.Data))
		if err != nil {
			return nil, err
		}
		return &model.Value{Kind: model.KindInteger, Int: i}, nil
	case unstable.Float:
		f, err := parseFloat(string(node.Data))
		if err != nil {
			return nil, err
		}
		return &model.Value{Kind: model.KindFloat, Float: f}, nil
	case unstable.Bool:
		return &model.Value{Kind: model.KindBool, Bool: string(node.Data) == "true"}, nil
	case unstable.DateTime, unstable.LocalDateTime, unstable.LocalDate, unstable.LocalTime:
		// Opaque textual literal; the raw document text is canonical.
		return &model.Value{Kind: model.KindDatetime, Datetime: string(node.Data)}, nil
	case unstable.Array:
		v := &model.Value{Kind: model.KindArray}
		it := node.Children()
		for it.Next() {
			elem, err := buildValue(it.Node())
			if err != nil {
				return nil, err
			}
			v.Array = append(v.Array, elem)
		}
		return v, nil
	case unstable.InlineTable:
		t := model.NewTable()
		it := node.Children()
		for it.Next() {
			if err := setKeyValue(t, it.Node()); err != nil {
				return nil, err
			}
		}
		return &model.Value{Kind: model.KindTable, Table: t}, nil
	default:
		return nil, errors.Newf("unsupported toml node kind %v", node.Kind)
	}
}

// parseInteger handles the TOML integer forms: optional sign, underscore
// separators, and 0x/0o/0b prefixes.
func parseInteger(s string) (int64, error) {
	s = strings.ReplaceAll(s, "_", "")
	i, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "integer `%s`", s)
	}
	return i, nil
}

// parseFloat handles the TOML float forms, including the inf and nan
// specials strconv does not accept with a sign prefix convention.
func parseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(s, "_", "")
	switch s {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "float `%s`", s)
	}
	return f, nil
}
