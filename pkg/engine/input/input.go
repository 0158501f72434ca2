package input

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readByte reads a single byte from r
func readByte(r io.Reader) (byte, error) {
	buf := make([]byte, 1)
	_, err := r.Read(buf)
	return buf[0], err
}

// tryReadArrowKey attempts to read an arrow key escape sequence.
// Returns the arrow direction string if successful, empty string otherwise.
func tryReadArrowKey(r io.Reader, firstByte byte) string {
	if firstByte != 0x1b {
		return ""
	}

	b2, err := readByte(r)
	if err != nil {
		return ""
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return ""
	}
	b3, err := readByte(r)
	if err != nil {
		return ""
	}

	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	// Unknown escape sequence - discard it
	return ""
}

// DecodeKey reads one key press from r and returns its binding code:
// arrow_up/down/left/right, enter, quit for Ctrl+C, or the printable
// character itself. Unknown sequences decode to "".
func DecodeKey(r io.Reader) (string, error) {
	b, err := readByte(r)
	if err != nil {
		return "", err
	}

	switch {
	case b == 0x1b:
		return tryReadArrowKey(r, b), nil
	case b == 3:
		return "quit", nil
	case b == '\n' || b == '\r':
		return "enter", nil
	case b >= 32 && b < 127:
		return string(b), nil
	}
	return "", nil
}

// ReadKey puts the terminal into raw mode, reads a single key press from
// stdin and restores the terminal.
func ReadKey() (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	return DecodeKey(os.Stdin)
}
