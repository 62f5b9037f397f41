package pdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Font names a page resource font. F1 maps to Helvetica, F2 to Helvetica-Bold.
type Font string

const (
	FontRegular Font = "F1"
	FontBold    Font = "F2"
)

// DefaultTextColor is the fill colour used for body text.
const DefaultTextColor = "#0f172a"

// Content accumulates raw content-stream operator lines for a single page.
// The zero value is ready to use.
type Content struct {
	ops []string
}

// Ops returns the accumulated operator lines in emission order.
func (c *Content) Ops() []string {
	return c.ops
}

// FillRect paints a filled rectangle. Coordinates are PDF space, origin
// bottom-left.
func (c *Content) FillRect(x, y, w, h float64, hexColor string) {
	r, g, b := hexToRGB(hexColor)
	c.ops = append(c.ops, fmt.Sprintf("%s %s %s rg %s %s %s %s re f",
		Num(r), Num(g), Num(b), Num(x), Num(y), Num(w), Num(h)))
}

// StrokeRect outlines a rectangle with the given line width.
func (c *Content) StrokeRect(x, y, w, h float64, hexColor string, lineWidth float64) {
	r, g, b := hexToRGB(hexColor)
	c.ops = append(c.ops, fmt.Sprintf("%s %s %s RG %s w %s %s %s %s re S",
		Num(r), Num(g), Num(b), Num(lineWidth), Num(x), Num(y), Num(w), Num(h)))
}

// DrawLine strokes a straight segment between two points.
func (c *Content) DrawLine(x1, y1, x2, y2 float64, hexColor string, lineWidth float64) {
	r, g, b := hexToRGB(hexColor)
	c.ops = append(c.ops, fmt.Sprintf("%s %s %s RG %s w %s %s m %s %s l S",
		Num(r), Num(g), Num(b), Num(lineWidth), Num(x1), Num(y1), Num(x2), Num(y2)))
}

// DrawText places a text run at x,y. Only the Latin-1 subset of the standard
// Helvetica fonts renders correctly; no shaping is performed.
func (c *Content) DrawText(text string, x, y, size float64, font Font, hexColor string) {
	r, g, b := hexToRGB(hexColor)
	c.ops = append(c.ops, fmt.Sprintf("BT /%s %s Tf %s %s %s rg %s %s Td (%s) Tj ET",
		font, Num(size), Num(r), Num(g), Num(b), Num(x), Num(y), EscapeText(text)))
}

// DrawCenteredText centers text horizontally using an approximate glyph width
// of size*0.52 per character, clamped to a 20pt left margin.
func (c *Content) DrawCenteredText(text string, pageWidth, y, size float64, font Font, hexColor string) {
	width := float64(len(text)) * size * 0.52
	x := (pageWidth - width) / 2
	if x < 20 {
		x = 20
	}
	c.DrawText(text, x, y, size, font, hexColor)
}

// DrawImage places the page's single image XObject (/Im1) scaled to w×h at
// x,y. Only one embedded image per document is supported.
func (c *Content) DrawImage(x, y, w, h float64) {
	c.ops = append(c.ops, fmt.Sprintf("q %s 0 0 %s %s %s cm /Im1 Do Q",
		Num(w), Num(h), Num(x), Num(y)))
}

// Num formats an operand the way the content stream expects: integers carry
// no decimal point, everything else is fixed at two decimals.
func Num(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EscapeText escapes the characters PDF string literals reserve. Nothing else
// is transformed.
func EscapeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\', '(', ')':
			b.WriteByte('\\')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// hexToRGB converts a 3- or 6-digit hex colour (with or without leading #,
// case-insensitive) into 0..1 channel values. Unparseable input yields black.
func hexToRGB(hexColor string) (float64, float64, float64) {
	s := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	r := float64((v>>16)&0xff) / 255
	g := float64((v>>8)&0xff) / 255
	b := float64(v&0xff) / 255
	return r, g, b
}
