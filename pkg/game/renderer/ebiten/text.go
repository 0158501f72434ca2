package ebiten

import (
	"image/color"
	"regexp"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// textSegment represents a segment of text with a specific color
type textSegment struct {
	text  string
	color color.Color
}

// drawColoredChar draws a glyph centred in the tile at x, y
func (e *EbitenRenderer) drawColoredChar(screen *ebiten.Image, char string, x, y int, col color.Color) {
	face := e.getMonoFontFace()
	w, h := text.Measure(char, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(e.tileSize)-w)/2, float64(y)+(float64(e.tileSize)-h)/2)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, char, face, op)
}

// drawColoredText draws UI text in a single color
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y int, col color.Color) {
	face := e.getSansFontFace()
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y)+face.Size)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

var markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

// parseMarkup parses a message with markup (ITEM{}, ROOM{}, ACTION{}, GT{})
// and returns colored segments
func parseMarkup(msg string) []textSegment {
	var segments []textSegment
	lastIndex := 0

	for _, match := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		if match[0] > lastIndex {
			segments = append(segments, textSegment{text: msg[lastIndex:match[0]], color: colorText})
		}

		function := msg[match[2]:match[3]]
		content := msg[match[4]:match[5]]

		var segColor color.Color = colorText
		switch function {
		case "ITEM":
			segColor = colorItem
		case "ROOM":
			segColor = colorSubtle
			content = dynamicGet(content)
		case "ACTION":
			segColor = colorAction
		case "POWERED":
			segColor = colorPowered
		case "UNPOWERED":
			segColor = colorUnpowered
		case "GT":
			content = dynamicGet(content)
		}

		segments = append(segments, textSegment{text: content, color: segColor})
		lastIndex = match[1]
	}

	if lastIndex < len(msg) {
		segments = append(segments, textSegment{text: msg[lastIndex:], color: colorText})
	}
	return segments
}

// drawColoredTextSegments draws multiple text segments with different colors
func (e *EbitenRenderer) drawColoredTextSegments(screen *ebiten.Image, segments []textSegment, x, y int) {
	face := e.getSansFontFace()
	currentX := float64(x)

	for _, seg := range segments {
		if seg.text == "" {
			continue
		}

		op := &text.DrawOptions{}
		op.GeoM.Translate(currentX, float64(y)+face.Size)
		op.ColorScale.ScaleWithColor(seg.color)
		text.Draw(screen, seg.text, face, op)

		w, _ := text.Measure(seg.text, face, 0)
		currentX += w
	}
}
