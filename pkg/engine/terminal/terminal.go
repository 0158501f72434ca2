// Package terminal reports the size of the tty the station is drawn on.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Fallbacks used when stdout is not a terminal
const (
	FallbackCols = 80
	FallbackRows = 24
)

// Size returns the columns and rows of the terminal on stdout
func Size() (cols, rows int) {
	return sizeOf(int(os.Stdout.Fd()))
}

// sizeOf falls back per dimension so a half-reported size still draws
func sizeOf(fd int) (cols, rows int) {
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return FallbackCols, FallbackRows
	}
	if cols <= 0 {
		cols = FallbackCols
	}
	if rows <= 0 {
		rows = FallbackRows
	}
	return cols, rows
}
