package source

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// ErrUnresolved reports a registered symbol whose defining position does
// not exist in the module source. A case without a position has no place
// in the suite order, so adaptation refuses to produce one.
var ErrUnresolved = errors.New("source location unresolved")

// Locator resolves declaration positions by parsing module source files.
// Parsed files are cached by path so every case in a module shares one
// parse.
type Locator struct {
	fset  *token.FileSet
	files map[string]*ast.File
}

// NewLocator returns an empty Locator.
func NewLocator() *Locator {
	return &Locator{
		fset:  token.NewFileSet(),
		files: make(map[string]*ast.File),
	}
}

// Load parses and caches the given source file. A parse failure means the
// module itself is broken, which callers treat as a discovery failure
// rather than a missing symbol.
func (l *Locator) Load(file string) error {
	if _, ok := l.files[file]; ok {
		return nil
	}
	parsed, err := parser.ParseFile(l.fset, file, nil, parser.SkipObjectResolution)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	l.files[file] = parsed
	return nil
}

// Resolve returns the position of the named declaration in file. The
// symbol is either a function name ("TestOne") or a method reference
// qualified by its receiver type ("TestParser.TestHeader"). A symbol with
// no matching declaration resolves to ErrUnresolved.
func (l *Locator) Resolve(file, symbol string) (Location, error) {
	if err := l.Load(file); err != nil {
		return Location{}, err
	}
	recv, name := splitSymbol(symbol)
	for _, decl := range l.files[file].Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name.Name != name || receiverName(fn) != recv {
			continue
		}
		return Location{File: file, Line: l.fset.Position(fn.Pos()).Line}, nil
	}
	return Location{}, fmt.Errorf("%w: no declaration of %q in %s", ErrUnresolved, symbol, file)
}

func splitSymbol(symbol string) (recv, name string) {
	if i := strings.LastIndex(symbol, "."); i >= 0 {
		return symbol[:i], symbol[i+1:]
	}
	return "", symbol
}

func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	t := fn.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if ident, ok := t.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}
