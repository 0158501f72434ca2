package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"lightstation/pkg/engine/input"
	"lightstation/pkg/engine/terminal"
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/renderer"
	"lightstation/pkg/game/state"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows    = 7
	ViewportMinCols    = 15
	ViewportSideMargin = 4
	// Lines needed outside viewport:
	// - Room indicator + blank (2)
	// - Status bar (2)
	// - Actions (1)
	// - Messages pane (header + 5 messages + footer = 7)
	// - Input prompt (2)
	ViewportTopMargin = 14
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer

	colorCell        color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorItem        color.Style
	colorSubtle      color.Style
	colorPlayer      color.Style
	colorPowered     color.Style
	colorDoor        color.Style
	colorLight       color.Style
	colorEmergency   color.Style

	// dirty is set when a switch changed since the last frame
	dirty bool
}

// New creates a new TUI renderer writing to stdout. Line endings are written
// as CRLF because frames may be drawn while the input reader holds the
// terminal in raw mode.
func New() *TUIRenderer {
	return NewWithWriter(crlfWriter{os.Stdout})
}

type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewWithWriter creates a TUI renderer writing frames to w
func NewWithWriter(w io.Writer) *TUIRenderer {
	return &TUIRenderer{out: w}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() error {
	t.colorCell = color.Style{color.FgGray}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorItem = color.Style{color.FgMagenta}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorPowered = color.Style{color.FgGreen}
	t.colorDoor = color.Style{color.FgYellow, color.OpBold}
	t.colorLight = color.Style{color.FgLightYellow, color.OpBold}
	t.colorEmergency = color.Style{color.FgRed}
	return nil
}

// ShowSwitch marks the frame for redraw
func (t *TUIRenderer) ShowSwitch(switchID string, on bool) {
	t.dirty = true
}

// PlayClick is a no-op: the terminal has no sound of its own
func (t *TUIRenderer) PlayClick(switchID string) {}

// TakeDirty reports whether a switch changed since the last call
func (t *TUIRenderer) TakeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	fmt.Fprint(t.out, "\033[H\033[2J")
}

// GetInput reads a key from the terminal and returns a high-level Intent.
func (t *TUIRenderer) GetInput() (input.Intent, error) {
	code, err := input.ReadKey()
	if err != nil {
		return input.Intent{}, err
	}
	raw := input.RawInput{
		Device: input.DeviceTerminal,
		Code:   code,
		// Timestamp left zero for now; terminal input is inherently low frequency.
	}
	return input.MapToIntent(input.NewDebouncedInput(raw)), nil
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleCell:
		return t.colorCell.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleDoor:
		return t.colorDoor.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StylePowered:
		return t.colorPowered.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	return renderer.ApplyMarkup(fmt.Sprintf(msg, args...), func(function, operand string) string {
		switch function {
		case "GT":
			return dynamicGet(operand)
		case "ITEM":
			return t.colorItem.Sprint(operand)
		case "ROOM":
			return t.colorCell.Sprint(dynamicGet(operand))
		case "ACTION":
			return t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		case "POWERED":
			return t.colorPowered.Sprint(operand)
		case "UNPOWERED":
			return t.colorDenied.Sprint(operand)
		default:
			return fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}
	})
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.Size()

	cols = termWidth - (ViewportSideMargin * 2)
	rows = termHeight - ViewportTopMargin

	// Ensure minimum size
	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	// Keep rows and cols odd for centering
	if rows%2 == 0 {
		rows--
	}
	if cols%2 == 0 {
		cols--
	}

	return rows, cols
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	t.Clear()
	current := g.CurrentCell()
	if current == nil {
		return
	}

	if current.RoomNumber == world.UnknownRoom {
		t.printString("GT{IN_DOORWAY}\n\n")
	} else {
		t.printString("GT{IN_ROOM} ACTION{%d}\n\n", current.RoomNumber)
	}

	t.printMap(g)
	t.printStatusBar(g)
	t.printPossibleActions()
	t.printMessagesPane(g)

	fmt.Fprint(t.out, "\n> ")
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(g *state.Game, r *world.Cell) string {
	tile := renderer.Classify(g, r)
	icon := tile.Icon()

	switch tile {
	case renderer.TilePlayer:
		return t.colorPlayer.Sprint(icon)
	case renderer.TileFloorLit:
		return t.colorCell.Sprint(icon)
	case renderer.TileFloorDark, renderer.TileWall, renderer.TileLightOff, renderer.TileEmergencyOff:
		return t.colorSubtle.Sprint(icon)
	case renderer.TileDoorOpen:
		return t.colorPowered.Sprint(icon)
	case renderer.TileDoorClosed:
		return t.colorDoor.Sprint(icon)
	case renderer.TileLightOn:
		return t.colorLight.Sprint(icon)
	case renderer.TileEmergencyOn:
		return t.colorEmergency.Sprint(icon)
	case renderer.TileAPCOff, renderer.TileSwitchOff:
		return t.colorDenied.Sprint(icon)
	case renderer.TileAPCOn, renderer.TileSwitchOn:
		return t.colorPowered.Sprint(icon)
	default:
		return icon
	}
}

// printMap renders the viewport centred on the player
func (t *TUIRenderer) printMap(g *state.Game) {
	termWidth, _ := terminal.Size()
	viewportRows, viewportCols := t.GetViewportSize()

	centerIndent := (termWidth - viewportCols) / 2
	if centerIndent < 0 {
		centerIndent = 0
	}
	indent := strings.Repeat(" ", centerIndent)

	current := g.CurrentCell()
	startRow := current.Row - viewportRows/2
	startCol := current.Col - viewportCols/2

	var b strings.Builder
	for vRow := 0; vRow < viewportRows; vRow++ {
		b.WriteString(indent)
		for vCol := 0; vCol < viewportCols; vCol++ {
			cell := g.Grid.GetCell(startRow+vRow, startCol+vCol)
			if cell == nil {
				b.WriteString(renderer.IconVoid)
				continue
			}
			b.WriteString(t.renderCell(g, cell))
		}
		b.WriteString("\n")
	}
	fmt.Fprintln(t.out, b.String())
}

// printPossibleActions prints the available actions
func (t *TUIRenderer) printPossibleActions() {
	t.printString("- %s\n", gotext.Get("ACTIONS_LINE"))
}

// printStatusBar lists every switch with its state
func (t *TUIRenderer) printStatusBar(g *state.Game) {
	fmt.Fprint(t.out, t.colorSubtle.Sprint(gotext.Get("SWITCHES")+": "))
	controllers := g.Switches.All()
	if len(controllers) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("(none)"))
		return
	}
	parts := make([]string, 0, len(controllers))
	for _, c := range controllers {
		if c.IsOn() {
			parts = append(parts, t.colorPowered.Sprint(c.ID()+" on"))
		} else {
			parts = append(parts, t.colorDenied.Sprint(c.ID()+" off"))
		}
	}
	fmt.Fprintln(t.out, strings.Join(parts, t.colorSubtle.Sprint(", ")))
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(g *state.Game) {
	width, _ := terminal.Size()

	label := " Messages "
	labelLen := len(label)
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)))

	if len(g.Messages) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("  (no messages)"))
	} else {
		for _, msg := range g.Messages {
			fmt.Fprintf(t.out, "  %s\n", t.FormatText("%s", msg))
		}
	}

	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", width)))
}
