package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

// Image is a decoded picture ready for embedding. Data must already be
// baseline JPEG; the assembler declares DCTDecode and never re-encodes.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Spec is the output of a layout builder: page geometry plus the ordered
// content-stream operator lines that draw the page.
type Spec struct {
	PageWidth  float64
	PageHeight float64
	Ops        []string
}

// Build assembles a complete single-page PDF 1.4 file from a layout spec and
// an optional embedded image. Object offsets, the xref table and the trailer
// are tracked byte-exactly; a malformed input fails loudly instead of
// emitting a corrupt file.
func Build(spec Spec, logo *Image) ([]byte, error) {
	if spec.PageWidth <= 0 || spec.PageHeight <= 0 {
		return nil, fmt.Errorf("pdf: invalid page size %gx%g", spec.PageWidth, spec.PageHeight)
	}
	if logo != nil && (len(logo.Data) == 0 || logo.Width <= 0 || logo.Height <= 0) {
		return nil, fmt.Errorf("pdf: embedded image is missing data or dimensions")
	}

	content := strings.Join(spec.Ops, "\n")

	resources := "<< /Font << /F1 5 0 R /F2 6 0 R >>"
	if logo != nil {
		resources += " /XObject << /Im1 7 0 R >>"
	}
	resources += " >>"

	objects := [][]byte{
		[]byte("<< /Type /Catalog /Pages 2 0 R >>"),
		[]byte("<< /Type /Pages /Kids [3 0 R] /Count 1 >>"),
		[]byte(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Contents 4 0 R /Resources %s >>",
			Num(spec.PageWidth), Num(spec.PageHeight), resources)),
		[]byte(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)),
		[]byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"),
		[]byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>"),
	}
	if logo != nil {
		var img bytes.Buffer
		fmt.Fprintf(&img, "<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>\nstream\n",
			logo.Width, logo.Height, len(logo.Data))
		img.Write(logo.Data)
		img.WriteString("\nendstream")
		objects = append(objects, img.Bytes())
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	// Binary comment keeps transfer tools treating the file as binary.
	buf.WriteString("%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(body)
		buf.WriteString("\nendobj\n")
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	out := buf.Bytes()
	for i, off := range offsets {
		token := []byte(fmt.Sprintf("%d 0 obj", i+1))
		if off+len(token) > len(out) || !bytes.Equal(out[off:off+len(token)], token) {
			return nil, fmt.Errorf("pdf: xref offset drift for object %d", i+1)
		}
	}
	return out, nil
}
