// Package generator is the driver: it reads a declaration file, resolves and
// parses each referenced TOML document, runs the two emitters, and assembles,
// formats and writes the generated source file.
package generator

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"github.com/vovanwin/statictoml/internal/emitter"
	"github.com/vovanwin/statictoml/internal/ident"
	"github.com/vovanwin/statictoml/internal/parser"
	"github.com/vovanwin/statictoml/internal/request"
)

// RootEnv is the environment variable naming the project root that relative
// document paths are resolved against.
const RootEnv = "STATICTOML_ROOT"

// The error taxonomy. Every failure is fatal to its declaration, nothing is
// retried, and no partial output is written for a failed declaration.
var (
	ErrMissingRoot     = errors.New("project root not set")
	ErrFilePathInvalid = errors.New("file path invalid")
	ErrReadFile        = errors.New("read file")
	ErrParseToml       = errors.New("parse toml")
	ErrKeyInvalid      = ident.ErrKeyInvalid
	ErrNameCollision   = emitter.ErrNameCollision
	ErrSyntax          = request.ErrSyntax
)

// Options configures one generator run.
type Options struct {
	// Root overrides the RootEnv environment variable.
	Root string
	// Output overrides the default <declfile>_static.go output path.
	Output string
	// Logf, when set, receives one progress line per declaration.
	Logf func(format string, args ...any)
}

// Result summarizes a successful run.
type Result struct {
	OutputPath   string
	Package      string
	Declarations int
}

// Generate processes every declaration in declFile and writes the generated
// source next to it. On a formatting failure the unformatted text is still
// written so the cause can be inspected, and the error is returned.
func Generate(declFile string, opts Options) (*Result, error) {
	file, err := request.Parse(declFile, nil)
	if err != nil {
		return nil, err
	}
	if len(file.Requests) == 0 {
		return nil, errors.Newf("no statictoml declarations in %s", declFile)
	}

	root := opts.Root
	if root == "" {
		root = os.Getenv(RootEnv)
	}
	if root == "" {
		return nil, errors.Mark(
			errors.Newf("project root not set: pass --root or set %s", RootEnv),
			ErrMissingRoot)
	}

	var b strings.Builder
	b.WriteString("// Code generated by statictoml. DO NOT EDIT.\n\n")
	b.WriteString("package " + file.Package + "\n\n")
	for _, req := range file.Requests {
		src, err := buildDeclaration(req, root)
		if err != nil {
			return nil, err
		}
		b.WriteString(src)
		if opts.Logf != nil {
			opts.Logf("%s <- %s", req.Name, req.Path)
		}
	}

	out := opts.Output
	if out == "" {
		out = defaultOutput(declFile)
	}

	raw := []byte(b.String())
	formatted, err := imports.Process(out, raw, nil)
	if err != nil {
		_ = os.WriteFile(out, raw, 0o644)
		return nil, errors.Wrap(err, "format generated code")
	}
	if err := os.WriteFile(out, formatted, 0o644); err != nil {
		return nil, errors.Wrapf(err, "write %s", out)
	}

	return &Result{OutputPath: out, Package: file.Package, Declarations: len(file.Requests)}, nil
}

// buildDeclaration renders the three pieces for one declaration: the
// binding, the type hierarchy, and the file-content anchor.
func buildDeclaration(req request.Request, root string) (string, error) {
	joined := filepath.Join(root, req.Path)
	if !utf8.ValidString(joined) || strings.ContainsRune(joined, 0) {
		return "", errors.Mark(
			errors.Newf("%s: cannot construct valid file path from `%s`", req.Pos, req.Path),
			ErrFilePathInvalid)
	}

	data, err := os.ReadFile(joined)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "%s: read `%s`", req.Pos, req.Path), ErrReadFile)
	}

	tree, err := parser.Parse(data)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "%s: parse `%s`", req.Pos, req.Path), ErrParseToml)
	}

	cfg := req.Config
	rootMod := cfg.RootMod
	if rootMod == "" {
		// A flattened type named after the declaration would collide with
		// the binding itself, hence the _config segment.
		rootMod = ident.ToSnake(req.Name) + "_config"
	}

	eopts := emitter.Options{
		Prefix:       cfg.Prefix,
		Suffix:       cfg.Suffix,
		ValuesIdent:  cfg.ValuesIdent,
		PreferSlices: cfg.PreferSlices == nil || *cfg.PreferSlices,
		Cow:          cfg.Cow,
		Exported:     req.Exported,
		Derives:      req.Derives,
	}

	typesSrc, err := emitter.Types(tree, rootMod, eopts)
	if err != nil {
		return "", errors.Wrapf(err, "%s", req.Pos)
	}
	valueSrc, err := emitter.Value(tree, rootMod, eopts)
	if err != nil {
		return "", errors.Wrapf(err, "%s", req.Pos)
	}
	rootType, err := emitter.RootTypeName(rootMod, eopts)
	if err != nil {
		return "", errors.Wrapf(err, "%s", req.Pos)
	}

	var b strings.Builder
	writeDocLines(&b, req.Doc)
	if autoDocEnabled(req) {
		writeDocLines(&b, emitter.AutoDoc(req.Path, string(data)))
	}
	for _, attr := range req.OtherAttrs {
		b.WriteString(attr + "\n")
	}

	switch req.Storage {
	case request.StorageConst:
		b.WriteString("func " + req.Name + "() " + rootType + " {\n\treturn " + valueSrc + "\n}\n\n")
	default:
		b.WriteString("var " + req.Name + " " + rootType + " = " + valueSrc + "\n\n")
	}

	b.WriteString(typesSrc)

	b.WriteString("// Anchors the generated code to the exact document text so that\n")
	b.WriteString("// regeneration drift shows up as a diff here.\n")
	b.WriteString("var _ = " + rawStringLit(string(data)) + "\n\n")

	return b.String(), nil
}

// autoDocEnabled resolves the tri-state: explicit setting wins, the default
// is on only when the caller wrote no documentation of their own.
func autoDocEnabled(req request.Request) bool {
	if req.Config.AutoDoc != nil {
		return *req.Config.AutoDoc
	}
	return len(req.Doc) == 0
}

func writeDocLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		if l == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// " + l + "\n")
	}
}

// rawStringLit renders s as a Go string literal, backquoted when possible.
func rawStringLit(s string) string {
	if !strings.ContainsAny(s, "`\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

func defaultOutput(declFile string) string {
	base := strings.TrimSuffix(filepath.Base(declFile), ".go") + "_static.go"
	return filepath.Join(filepath.Dir(declFile), base)
}
