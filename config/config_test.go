package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/shapegen/internal/test"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(name, []byte(content), 0o666))
	return name
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "types.go", c.TypesFile)
	assert.False(t, c.Backup)

	c.OutDir = filepath.Join("some", "digits")
	assert.Equal(t, "digits", c.PackageName())
}

func TestLoad(t *testing.T) {
	name := writeConfig(t, `
package = "ast"
out_dir = "out"
parser_file = "parse.go"
backup = true
log_level = "debug"
`)
	c, e := Load(name, false)
	require.NoError(t, e)
	assert.Equal(t, "ast", c.PackageName())
	assert.Equal(t, "out", c.OutDir)
	assert.Equal(t, "parse.go", c.ParserFile)
	assert.Equal(t, "printer.go", c.PrinterFile)
	assert.True(t, c.Backup)

	opts := c.Options(filepath.Join("x", "json.shape"))
	assert.Equal(t, "json.shape", opts.Source)
	assert.Equal(t, "parse.go", opts.ParserFile)
}

func TestMissing(t *testing.T) {
	name := filepath.Join(t.TempDir(), FileName)
	c, e := Load(name, true)
	require.NoError(t, e)
	assert.Equal(t, Default(), c)

	_, e = Load(name, false)
	test.ExpectErrorCode(t, ReadError, e)

	c, e = Lookup(filepath.Join(filepath.Dir(name), "digits.shape"))
	require.NoError(t, e)
	assert.Equal(t, Default(), c)
}

func TestInvalid(t *testing.T) {
	samples := []struct {
		content string
		code    int
	}{
		{`package = `, DecodeError},
		{`package = "my-pkg"`, InvalidPackageError},
		{`package = "func"`, InvalidPackageError},
		{`types_file = "sub/types.go"`, InvalidFileError},
		{`types_file = "types.txt"`, InvalidFileError},
		{`printer_file = "parser.go"`, InvalidFileError},
		{`log_level = "loud"`, InvalidLevelError},
	}
	for _, s := range samples {
		_, e := Load(writeConfig(t, s.content), false)
		test.ExpectErrorCode(t, s.code, e)
	}
}
