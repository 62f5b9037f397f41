package pdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumFormatting(t *testing.T) {
	assert.Equal(t, "0", Num(0))
	assert.Equal(t, "12", Num(12))
	assert.Equal(t, "-4", Num(-4))
	assert.Equal(t, "242.65", Num(242.65))
	assert.Equal(t, "595.28", Num(595.28))
	assert.Equal(t, "0.06", Num(15.0/255))
	assert.Equal(t, "3.33", Num(10.0/3))
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "plain", EscapeText("plain"))
	assert.Equal(t, `\(a\)`, EscapeText("(a)"))
	assert.Equal(t, `back\\slash`, EscapeText(`back\slash`))
	assert.Equal(t, "héllo", EscapeText("héllo"), "non-ASCII bytes pass through untouched")
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#ffffff")
	assert.Equal(t, []float64{1, 1, 1}, []float64{r, g, b})

	r, g, b = hexToRGB("000")
	assert.Equal(t, []float64{0, 0, 0}, []float64{r, g, b})

	r, g, b = hexToRGB("#F00")
	assert.Equal(t, []float64{1, 0, 0}, []float64{r, g, b})

	r, g, b = hexToRGB("not-a-color")
	assert.Equal(t, []float64{0, 0, 0}, []float64{r, g, b})
}

func TestFillRectOp(t *testing.T) {
	c := &Content{}
	c.FillRect(10, 20, 100, 50.5, "#ffffff")
	require.Len(t, c.Ops(), 1)
	assert.Equal(t, "1 1 1 rg 10 20 100 50.50 re f", c.Ops()[0])
}

func TestStrokeRectAndLineOps(t *testing.T) {
	c := &Content{}
	c.StrokeRect(1, 2, 3, 4, "#000", 1)
	c.DrawLine(0, 0, 10, 0, "#000", 0.5)
	require.Len(t, c.Ops(), 2)
	assert.Equal(t, "0 0 0 RG 1 w 1 2 3 4 re S", c.Ops()[0])
	assert.Equal(t, "0 0 0 RG 0.50 w 0 0 m 10 0 l S", c.Ops()[1])
}

func TestDrawTextOp(t *testing.T) {
	c := &Content{}
	c.DrawText("Report (2026)", 20, 700, 12, FontRegular, "#000000")
	require.Len(t, c.Ops(), 1)
	assert.Equal(t, `BT /F1 12 Tf 0 0 0 rg 20 700 Td (Report \(2026\)) Tj ET`, c.Ops()[0])
}

func TestDrawCenteredTextHeuristic(t *testing.T) {
	c := &Content{}
	c.DrawCenteredText("ABCD", 200, 10, 10, FontBold, "#000000")
	require.Len(t, c.Ops(), 1)

	// width = 4 chars * 10pt * 0.52 = 20.8 -> x = (200-20.8)/2 = 89.6
	assert.Equal(t, fmt.Sprintf("BT /F2 10 Tf 0 0 0 rg %s 10 Td (ABCD) Tj ET", Num(89.6)), c.Ops()[0])
}

func TestDrawCenteredTextClampsToLeftMargin(t *testing.T) {
	c := &Content{}
	c.DrawCenteredText("A very long heading that overflows the page", 100, 10, 12, FontRegular, "#000000")
	require.Len(t, c.Ops(), 1)
	assert.Contains(t, c.Ops()[0], " 20 10 Td ")
}

func TestDrawImageOp(t *testing.T) {
	c := &Content{}
	c.DrawImage(24, 760, 56, 56)
	require.Len(t, c.Ops(), 1)
	assert.Equal(t, "q 56 0 0 56 24 760 cm /Im1 Do Q", c.Ops()[0])
}
