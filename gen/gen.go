// Package gen translates lowered language data to Go source files:
// type definitions, parser, visitor, and printer.
package gen

import (
	"go/format"
	"go/token"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/ava12/shapegen/model"
)

// Options define generated package and file names.
// Empty file names are replaced with defaults.
type Options struct {
	Package     string
	Source      string
	TypesFile   string
	ParserFile  string
	VisitorFile string
	PrinterFile string
}

const (
	DefaultTypesFile   = "types.go"
	DefaultParserFile  = "parser.go"
	DefaultVisitorFile = "visitor.go"
	DefaultPrinterFile = "printer.go"
)

// File is a generated Go source file.
type File struct {
	Name    string
	Content []byte
}

var packageRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func (o Options) withDefaults() Options {
	defaults := []struct {
		field *string
		value string
	}{
		{&o.TypesFile, DefaultTypesFile},
		{&o.ParserFile, DefaultParserFile},
		{&o.VisitorFile, DefaultVisitorFile},
		{&o.PrinterFile, DefaultPrinterFile},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}
	if o.Source == "" {
		o.Source = "grammar"
	}
	return o
}

// ValidPackage reports whether name can be used as Go package name.
func ValidPackage(name string) bool {
	return packageRe.MatchString(name) && !token.IsKeyword(name)
}

// Generate returns formatted source files in order: types, parser, visitor, printer.
func Generate(d *model.LangData, opts Options) ([]File, error) {
	opts = opts.withDefaults()
	if !ValidPackage(opts.Package) {
		return nil, badPackageError(opts.Package)
	}

	generators := []struct {
		name string
		f    func(*model.LangData, *Options) []byte
	}{
		{opts.TypesFile, generateTypes},
		{opts.ParserFile, generateParser},
		{opts.VisitorFile, generateVisitor},
		{opts.PrinterFile, generatePrinter},
	}

	result := make([]File, len(generators))
	var group errgroup.Group
	for i, gen := range generators {
		i, gen := i, gen
		group.Go(func() error {
			content, e := format.Source(gen.f(d, &opts))
			if e != nil {
				return formatSourceError(gen.name, e)
			}

			result[i] = File{Name: gen.name, Content: content}
			return nil
		})
	}

	if e := group.Wait(); e != nil {
		return nil, e
	}
	return result, nil
}
