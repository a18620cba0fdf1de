package gen

import "github.com/ava12/shapegen"

const (
	BadPackageError = shapegen.GenErrors + iota
	FormatSourceError
	WriteFileError
	ReadFileError
)

func badPackageError(name string) *shapegen.Error {
	return shapegen.FormatError(BadPackageError, "invalid package name: %s", name)
}

func formatSourceError(file string, e error) *shapegen.Error {
	return shapegen.FormatError(FormatSourceError, "generated %s is not valid Go: %s", file, e.Error())
}

func writeFileError(file string, e error) *shapegen.Error {
	return shapegen.FormatError(WriteFileError, "cannot write %s: %s", file, e.Error())
}

func readFileError(file string, e error) *shapegen.Error {
	return shapegen.FormatError(ReadFileError, "cannot read %s: %s", file, e.Error())
}
