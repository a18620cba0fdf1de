// Package config loads shapegen project configuration from a TOML file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/ava12/shapegen"
	"github.com/ava12/shapegen/gen"
	"github.com/ava12/shapegen/internal/logutil"
)

// FileName is the name of configuration file looked up next to grammar file.
const FileName = "shapegen.toml"

const (
	ReadError = shapegen.ConfigErrors + iota
	DecodeError
	InvalidPackageError
	InvalidFileError
	InvalidLevelError
)

// Config defines generated package and output files.
// Empty package name means the base name of output directory.
type Config struct {
	Package     string `toml:"package"`
	OutDir      string `toml:"out_dir"`
	TypesFile   string `toml:"types_file"`
	ParserFile  string `toml:"parser_file"`
	VisitorFile string `toml:"visitor_file"`
	PrinterFile string `toml:"printer_file"`
	Backup      bool   `toml:"backup"`
	LogLevel    string `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		OutDir:      ".",
		TypesFile:   gen.DefaultTypesFile,
		ParserFile:  gen.DefaultParserFile,
		VisitorFile: gen.DefaultVisitorFile,
		PrinterFile: gen.DefaultPrinterFile,
		LogLevel:    "info",
	}
}

// Load reads configuration file over defaults. Missing file is not an error if optional is set.
func Load(name string, optional bool) (*Config, error) {
	c := Default()
	src, e := os.ReadFile(name)
	if e != nil {
		if optional && errors.Is(e, fs.ErrNotExist) {
			return c, nil
		}
		return nil, shapegen.FormatError(ReadError, "cannot read config %s: %s", name, e.Error())
	}

	if e = toml.Unmarshal(src, c); e != nil {
		return nil, shapegen.FormatError(DecodeError, "invalid config %s: %s", name, e.Error())
	}
	return c, c.Validate()
}

// Lookup loads FileName from the directory of grammar file if present.
func Lookup(grammarFile string) (*Config, error) {
	return Load(filepath.Join(filepath.Dir(grammarFile), FileName), true)
}

// Validate checks package name, file names, and log level.
func (c *Config) Validate() error {
	if c.Package != "" && !gen.ValidPackage(c.Package) {
		return shapegen.FormatError(InvalidPackageError, "invalid package name: %s", c.Package)
	}

	seen := make(map[string]string)
	files := []struct{ key, name string }{
		{"types_file", c.TypesFile},
		{"parser_file", c.ParserFile},
		{"visitor_file", c.VisitorFile},
		{"printer_file", c.PrinterFile},
	}
	for _, f := range files {
		if f.name == "" || filepath.Base(f.name) != f.name || filepath.Ext(f.name) != ".go" {
			return shapegen.FormatError(InvalidFileError, "%s must be a plain .go file name, got %q", f.key, f.name)
		}
		if prev, has := seen[f.name]; has {
			return shapegen.FormatError(InvalidFileError, "%s and %s both name %s", prev, f.key, f.name)
		}
		seen[f.name] = f.key
	}

	if _, ok := logutil.ParseLevel(c.LogLevel); !ok {
		return shapegen.FormatError(InvalidLevelError, "unknown log level: %s", c.LogLevel)
	}
	return nil
}

// PackageName returns configured package name or the base name of output directory.
func (c *Config) PackageName() string {
	if c.Package != "" {
		return c.Package
	}
	dir, e := filepath.Abs(c.OutDir)
	if e != nil {
		return ""
	}
	return filepath.Base(dir)
}

// Options returns generator options for grammar source name.
func (c *Config) Options(source string) gen.Options {
	return gen.Options{
		Package:     c.PackageName(),
		Source:      filepath.Base(source),
		TypesFile:   c.TypesFile,
		ParserFile:  c.ParserFile,
		VisitorFile: c.VisitorFile,
		PrinterFile: c.PrinterFile,
	}
}
