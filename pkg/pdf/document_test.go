package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseXref walks the generated file the way a PDF reader would: locate
// startxref, read the xref table, and return the recorded object offsets.
func parseXref(t *testing.T, doc []byte) []int {
	t.Helper()

	idx := bytes.LastIndex(doc, []byte("startxref\n"))
	require.GreaterOrEqual(t, idx, 0, "startxref keyword missing")
	rest := string(doc[idx+len("startxref\n"):])
	nl := strings.IndexByte(rest, '\n')
	require.Greater(t, nl, 0)
	xrefStart, err := strconv.Atoi(strings.TrimSpace(rest[:nl]))
	require.NoError(t, err)

	section := string(doc[xrefStart:])
	lines := strings.Split(section, "\n")
	require.Equal(t, "xref", lines[0])

	var first, count int
	_, err = fmt.Sscanf(lines[1], "%d %d", &first, &count)
	require.NoError(t, err)
	require.Equal(t, 0, first)

	offsets := make([]int, 0, count-1)
	for i := 2; i < 2+count; i++ {
		var off, gen int
		var kind string
		_, err = fmt.Sscanf(lines[i], "%d %d %s", &off, &gen, &kind)
		require.NoError(t, err)
		if i == 2 {
			assert.Equal(t, "f", kind)
			continue
		}
		assert.Equal(t, "n", kind)
		offsets = append(offsets, off)
	}
	return offsets
}

func buildSpec(w, h float64) Spec {
	c := &Content{}
	c.FillRect(0, 0, w, h, "#ffffff")
	c.DrawText("Hello", 40, h-40, 12, FontRegular, DefaultTextColor)
	return Spec{PageWidth: w, PageHeight: h, Ops: c.Ops()}
}

func TestBuildProducesParseableFile(t *testing.T) {
	doc, err := Build(buildSpec(595.28, 841.89), nil)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-1.4\n")))
	assert.True(t, bytes.HasSuffix(doc, []byte("%%EOF\n")))
	assert.Contains(t, string(doc), "/MediaBox [0 0 595.28 841.89]")
	assert.Contains(t, string(doc), "/Kids [3 0 R] /Count 1")

	offsets := parseXref(t, doc)
	require.Len(t, offsets, 6, "six objects without an image")
	for i, off := range offsets {
		token := fmt.Sprintf("%d 0 obj", i+1)
		require.LessOrEqual(t, off+len(token), len(doc))
		assert.Equal(t, token, string(doc[off:off+len(token)]), "xref offset must point at the object header")
	}
}

func TestBuildContentStreamLength(t *testing.T) {
	spec := buildSpec(242.65, 153.07)
	doc, err := Build(spec, nil)
	require.NoError(t, err)

	content := strings.Join(spec.Ops, "\n")
	assert.Contains(t, string(doc), fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
}

func TestBuildWithImageEmbedsXObject(t *testing.T) {
	// Not a real JPEG; the assembler must pass bytes through untouched.
	logo := &Image{Data: []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}, Width: 120, Height: 80}
	doc, err := Build(buildSpec(841.89, 595.28), logo)
	require.NoError(t, err)

	s := string(doc)
	assert.Contains(t, s, "/XObject << /Im1 7 0 R >>")
	assert.Contains(t, s, "/Width 120 /Height 80")
	assert.Contains(t, s, "/Filter /DCTDecode")
	assert.Contains(t, s, "/Length 6")
	assert.True(t, bytes.Contains(doc, logo.Data))

	offsets := parseXref(t, doc)
	require.Len(t, offsets, 7, "image adds a seventh object")
	for i, off := range offsets {
		token := fmt.Sprintf("%d 0 obj", i+1)
		assert.Equal(t, token, string(doc[off:off+len(token)]))
	}
}

func TestBuildWithoutImageOmitsXObject(t *testing.T) {
	doc, err := Build(buildSpec(841.89, 595.28), nil)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "/XObject")
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	_, err := Build(Spec{PageWidth: 0, PageHeight: 100}, nil)
	assert.Error(t, err)

	_, err = Build(buildSpec(100, 100), &Image{Data: nil, Width: 10, Height: 10})
	assert.Error(t, err)
}
