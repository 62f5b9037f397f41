package templates

import "github.com/noah-isme/sma-records-api/pkg/pdf"

// BuildCertificate lays out an A4 landscape certificate with a double border
// and centered prose.
func BuildCertificate(ctx Context, title, periodLabel string, logo *pdf.Image) pdf.Spec {
	w, h := A4Height, A4Width // landscape
	c := &pdf.Content{}

	c.FillRect(0, 0, w, h, colorWhite)
	c.StrokeRect(16, 16, w-32, h-32, colorAccent, 3)
	c.StrokeRect(26, 26, w-52, h-52, colorBorder, 1)

	drawLogoBox(c, logo, w/2-28, h-122, 56, 56)

	c.DrawCenteredText(ctx.InstitutionName, w, h-148, 22, pdf.FontBold, colorDark)
	c.DrawCenteredText(ctx.InstitutionAddress, w, h-166, 10, pdf.FontRegular, colorMuted)

	c.DrawCenteredText(title, w, h-212, 26, pdf.FontBold, colorAccent)

	c.DrawCenteredText("This is to certify that", w, h-258, 12, pdf.FontRegular, colorDark)
	c.DrawCenteredText(ctx.studentName(), w, h-292, 24, pdf.FontBold, colorDark)

	idLine := "Student ID: " + ctx.StudentDisplayID
	if ctx.ClassName != "" {
		idLine += "  |  Class: " + ctx.ClassName
	}
	c.DrawCenteredText(idLine, w, h-316, 11, pdf.FontRegular, colorMuted)
	c.DrawCenteredText("has satisfactorily completed the requirements for the period "+periodLabel+".",
		w, h-344, 12, pdf.FontRegular, colorDark)

	c.DrawCenteredText("Issued on "+ctx.GeneratedAt.Format("2 January 2006"), w, h-376, 10, pdf.FontRegular, colorMuted)

	// One signature block, or two when a co-signatory is configured.
	sigY := 108.0
	if ctx.CoSignatoryName != "" {
		drawSignatureBlock(c, w/4-70, sigY, 140, 10, ctx.signatoryName(), ctx.signatoryTitle())
		coTitle := ctx.CoSignatoryTitle
		if coTitle == "" {
			coTitle = "Co-signatory"
		}
		drawSignatureBlock(c, 3*w/4-70, sigY, 140, 10, ctx.CoSignatoryName, coTitle)
	} else {
		drawSignatureBlock(c, w/2-70, sigY, 140, 10, ctx.signatoryName(), ctx.signatoryTitle())
	}

	c.DrawCenteredText(ctx.footerText(), w, 46, 8, pdf.FontRegular, colorMuted)

	return pdf.Spec{PageWidth: w, PageHeight: h, Ops: c.Ops()}
}
