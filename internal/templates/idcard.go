package templates

import "github.com/noah-isme/sma-records-api/pkg/pdf"

// BuildIDCard lays out a CR80-sized student identification card.
func BuildIDCard(ctx Context, title, periodLabel string, logo *pdf.Image) pdf.Spec {
	w, h := CardWidth, CardHeight
	c := &pdf.Content{}

	c.FillRect(0, 0, w, h, colorWhite)

	// Header band with the institution identity.
	c.FillRect(0, h-34, w, 34, colorPrimary)
	c.DrawText(ctx.InstitutionName, 10, h-16, 9, pdf.FontBold, colorWhite)
	c.DrawText(title, 10, h-27, 6, pdf.FontRegular, colorWhite)

	drawLogoBox(c, logo, 10, 34, 44, 44)

	// Identity zone right of the logo.
	bodyX := 62.0
	c.DrawText(ctx.studentName(), bodyX, h-52, 11, pdf.FontBold, colorDark)
	c.DrawText("ID: "+ctx.StudentDisplayID, bodyX, h-66, 7.5, pdf.FontRegular, colorDark)
	if ctx.ClassName != "" {
		c.DrawText("Class: "+ctx.ClassName, bodyX, h-77, 7.5, pdf.FontRegular, colorDark)
	}
	c.DrawText("Valid: "+periodLabel, bodyX, h-88, 7.5, pdf.FontRegular, colorMuted)

	drawSignatureBlock(c, w-84, 40, 64, 7, ctx.signatoryName(), ctx.signatoryTitle())

	// Footer band.
	c.FillRect(0, 0, w, 16, colorDark)
	c.DrawCenteredText(ctx.footerText(), w, 6, 5.5, pdf.FontRegular, colorWhite)

	return pdf.Spec{PageWidth: w, PageHeight: h, Ops: c.Ops()}
}
