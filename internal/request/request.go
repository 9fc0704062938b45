// Package request reads declaration files: Go source containing
// statictoml.Static / statictoml.Const marker calls plus their directive
// comments. It produces one Request per declaration with the attribute bag
// already partitioned into configuration, derives, doc and other attributes.
package request

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vovanwin/statictoml/internal/ident"
)

// ErrSyntax marks declaration files the parser rejects.
var ErrSyntax = errors.New("syntax error")

// markerPath is the import path of the caller-facing marker package.
const markerPath = "github.com/vovanwin/statictoml"

// StorageClass selects how the binding is emitted.
type StorageClass int

const (
	// StorageStatic emits a shared package-level var.
	StorageStatic StorageClass = iota
	// StorageConst emits a niladic function returning a fresh copy.
	StorageConst
)

// Config is the per-declaration configuration bag. Pointer fields are
// tri-state: nil means the caller said nothing.
type Config struct {
	Prefix       string
	Suffix       string
	RootMod      string
	ValuesIdent  string
	PreferSlices *bool
	AutoDoc      *bool
	Cow          bool
}

// Request is one parsed declaration.
type Request struct {
	Name       string
	Exported   bool
	Storage    StorageClass
	Path       string
	Config     Config
	Derives    []string
	Doc        []string // plain comment lines, without the // prefix
	OtherAttrs []string // unrelated directive lines, verbatim
	Pos        token.Position
}

// File is the result of parsing one declaration file.
type File struct {
	Package  string
	Requests []Request
}

// configKeys names the recognized configuration attributes, for error text.
const configKeys = "`prefix`, `suffix`, `root_mod`, `values_ident`, `prefer_slices`, `auto_doc` or `cow`"

// otherDirectiveRe matches tool directives such as //go:generate or
// //nolint:errcheck: no space after the slashes, a tool name, a colon.
var otherDirectiveRe = regexp.MustCompile(`^//[a-z0-9]+:`)

// Parse reads a declaration file. src may be nil to read filename from disk,
// or hold the source text (string or []byte), mirroring go/parser.
func Parse(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	astFile, err := goparser.ParseFile(fset, filename, src, goparser.ParseComments)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse declarations"), ErrSyntax)
	}

	marker := markerName(astFile)
	out := &File{Package: astFile.Name.Name}

	for _, decl := range astFile.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}
		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			doc := valueSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			req, ok, err := parseSpec(fset, marker, valueSpec, doc)
			if err != nil {
				return nil, err
			}
			if ok {
				out.Requests = append(out.Requests, req)
			}
		}
	}

	return out, nil
}

// markerName resolves the local name the marker package is imported under.
func markerName(f *ast.File) string {
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != markerPath {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return "statictoml"
	}
	return "statictoml"
}

// parseSpec turns one var spec into a Request. The second return value is
// false when the spec is not a marker declaration at all.
func parseSpec(fset *token.FileSet, marker string, spec *ast.ValueSpec, doc *ast.CommentGroup) (Request, bool, error) {
	if len(spec.Values) != 1 {
		return Request{}, false, nil
	}
	call, ok := spec.Values[0].(*ast.CallExpr)
	if !ok {
		return Request{}, false, nil
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return Request{}, false, nil
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != marker {
		return Request{}, false, nil
	}

	var storage StorageClass
	switch sel.Sel.Name {
	case "Static":
		storage = StorageStatic
	case "Const":
		storage = StorageConst
	default:
		return Request{}, false, syntaxErrf(fset.Position(sel.Sel.Pos()), "expected `Static` or `Const`, got `%s`", sel.Sel.Name)
	}

	if len(spec.Names) != 1 {
		return Request{}, false, syntaxErrf(fset.Position(spec.Pos()), "a declaration binds exactly one name")
	}
	if len(call.Args) != 1 {
		return Request{}, false, syntaxErrf(fset.Position(call.Pos()), "%s.%s takes exactly one path literal", marker, sel.Sel.Name)
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return Request{}, false, syntaxErrf(fset.Position(call.Args[0].Pos()), "the document path must be a string literal")
	}
	path, err := strconv.Unquote(lit.Value)
	if err != nil {
		return Request{}, false, syntaxErrf(fset.Position(lit.Pos()), "invalid path literal %s", lit.Value)
	}

	name := spec.Names[0].Name
	req := Request{
		Name:     name,
		Exported: ast.IsExported(name),
		Storage:  storage,
		Path:     path,
		Pos:      fset.Position(lit.Pos()),
	}
	if err := binAttributes(fset, doc, &req); err != nil {
		return Request{}, false, err
	}
	return req, true, nil
}

// binAttributes partitions the doc comment group into the four attribute
// bins: configuration directives, derive directives, plain doc lines, and
// other directives preserved verbatim.
func binAttributes(fset *token.FileSet, doc *ast.CommentGroup, req *Request) error {
	if doc == nil {
		return nil
	}
	for _, c := range doc.List {
		text := c.Text
		pos := fset.Position(c.Pos())
		switch {
		case strings.HasPrefix(text, "//statictoml:config"):
			body := strings.TrimPrefix(text, "//statictoml:config")
			if err := parseConfigBody(body, pos, &req.Config); err != nil {
				return err
			}
		case strings.HasPrefix(text, "//statictoml:derive"):
			body := strings.TrimPrefix(text, "//statictoml:derive")
			for _, d := range strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
				// Derives land inside a raw struct-tag literal; anything
				// beyond an identifier would corrupt the tag.
				if !ident.IsValid(d) {
					return syntaxErrf(pos, "derive `%s` is not a valid struct tag key", d)
				}
				req.Derives = append(req.Derives, d)
			}
		case strings.HasPrefix(text, "//statictoml:"):
			return syntaxErrf(pos, "unknown statictoml directive %s", strings.TrimPrefix(text, "//"))
		case otherDirectiveRe.MatchString(text):
			req.OtherAttrs = append(req.OtherAttrs, text)
		default:
			req.Doc = append(req.Doc, docLine(text))
		}
	}
	return nil
}

// parseConfigBody destructures the comma-separated `key = value` list of a
// config directive into the bag.
func parseConfigBody(body string, pos token.Position, cfg *Config) error {
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "cow" {
			if hasValue {
				return syntaxErrf(pos, "`cow` is a standalone attribute and does not accept a value")
			}
			cfg.Cow = true
			continue
		}
		if !hasValue || value == "" {
			return syntaxErrf(pos, "`%s` requires a value", key)
		}

		switch key {
		case "prefix":
			cfg.Prefix = value
		case "suffix":
			cfg.Suffix = value
		case "root_mod":
			cfg.RootMod = value
		case "values_ident":
			cfg.ValuesIdent = value
		case "prefer_slices":
			b, err := parseBool(value)
			if err != nil {
				return syntaxErrf(pos, "`prefer_slices` expects a boolean literal, got `%s`", value)
			}
			cfg.PreferSlices = &b
		case "auto_doc":
			b, err := parseBool(value)
			if err != nil {
				return syntaxErrf(pos, "`auto_doc` expects a boolean literal, got `%s`", value)
			}
			cfg.AutoDoc = &b
		default:
			return syntaxErrf(pos, "unexpected attribute `%s`, expected one of %s", key, configKeys)
		}

		switch key {
		case "prefix", "suffix", "root_mod", "values_ident":
			if !ident.IsValid(value) {
				return syntaxErrf(pos, "`%s` must be a valid identifier, got `%s`", key, value)
			}
		}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.Newf("not a boolean literal: %s", s)
}

// docLine strips the comment markers from a doc line.
func docLine(text string) string {
	if strings.HasPrefix(text, "//") {
		return strings.TrimPrefix(strings.TrimPrefix(text, "//"), " ")
	}
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}

func syntaxErrf(pos token.Position, format string, args ...any) error {
	return errors.Mark(errors.Newf("%s: "+format, append([]any{pos.String()}, args...)...), ErrSyntax)
}
