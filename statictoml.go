// Package statictoml is the caller-facing surface of the statictoml code
// generator. It compiles TOML documents into Go source: a statically typed,
// immutable value with every key resolved to an identifier and every value
// inlined as a literal.
//
// Declarations live in an ordinary Go file, conventionally guarded with a
// build tag so the markers never reach a binary:
//
//	//go:build statictoml
//
//	package config
//
//	import "github.com/vovanwin/statictoml"
//
//	// Example is the bundled example document.
//	//statictoml:config prefix=Cfg, values_ident=items
//	//statictoml:derive json
//	var Example = statictoml.Static("configs/example.toml")
//
// Running `statictoml gen <file>` emits a sibling *_static.go file declaring
// the value binding, the full type hierarchy mirroring the document, and an
// anchor holding the document text so regeneration drift shows up in review.
//
// Directive comments above a declaration configure the emission:
//
//	//statictoml:config key = value, ...
//
// with keys `prefix`, `suffix` (verbatim affixes on every generated type
// name), `root_mod` (root name segment, default snake_case of the declared
// name plus "_config"), `values_ident` (base segment for array element
// types, default "values"), `prefer_slices` (false forces every array into a
// positional struct), `auto_doc` (force the generated documentation on or
// off), and the standalone marker `cow` (homogeneous arrays become slices
// instead of fixed-size arrays).
//
//	//statictoml:derive json, yaml
//
// attaches the listed struct-tag keys to every generated field, tagged with
// the original TOML key.
//
// Plain comment lines become the binding's doc comment; unrelated directive
// lines (for example //nolint:...) are carried over verbatim.
package statictoml

// Document marks a TOML document for static inclusion. The generator reads
// marker calls syntactically; a Document carries no data at run time and the
// declaration file is never compiled into the host binary.
type Document struct {
	path string
}

// Static declares a package-level `var` binding for the document at path,
// relative to the project root. The value is shared by all readers.
func Static(path string) Document {
	return Document{path: path}
}

// Const declares a niladic function returning the document value, so every
// use site gets a fresh copy. This is the immutable-constant storage class:
// nothing shared, nothing to mutate.
func Const(path string) Document {
	return Document{path: path}
}

// Path returns the path literal the document was declared with.
func (d Document) Path() string {
	return d.path
}
