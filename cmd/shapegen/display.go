package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ava12/shapegen"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

func printSuccess(w io.Writer, msg string) {
	fmt.Fprint(w, successStyleBG.Sprint(" OK "))
	fmt.Fprintln(w, successColorFG.Sprint(" "+msg))
}

// printError prints error with its code if it is a shapegen error.
func printError(w io.Writer, e error) {
	tag := " ERROR "
	var se *shapegen.Error
	if errors.As(e, &se) {
		tag = fmt.Sprintf(" E%03d ", se.Code)
	}
	fmt.Fprint(w, errorStyleBG.Sprint(tag))
	fmt.Fprintln(w, errorColorFG.Sprint(" "+e.Error()))
}
