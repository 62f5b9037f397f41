package templates

import "github.com/noah-isme/sma-records-api/pkg/pdf"

// BuildReport lays out the A4 portrait tabular report: header band, student
// summary box, subject score table, attendance callout and aggregate line.
func BuildReport(ctx Context, title, periodLabel string, logo *pdf.Image) pdf.Spec {
	w, h := A4Width, A4Height
	c := &pdf.Content{}

	c.FillRect(0, 0, w, h, colorWhite)

	// Header band.
	c.FillRect(0, h-92, w, 92, colorPrimary)
	drawLogoBox(c, logo, 24, h-80, 56, 56)
	c.DrawText(ctx.InstitutionName, 92, h-46, 16, pdf.FontBold, colorWhite)
	c.DrawText(ctx.InstitutionAddress, 92, h-64, 9, pdf.FontRegular, colorWhite)

	c.DrawCenteredText(title, w, h-122, 14, pdf.FontBold, colorDark)
	c.DrawCenteredText("Period: "+periodLabel, w, h-138, 10, pdf.FontRegular, colorMuted)

	// Student summary box.
	boxTop := h - 156
	c.StrokeRect(40, boxTop-64, w-80, 64, colorBorder, 1)
	c.DrawText("Student: "+ctx.studentName(), 52, boxTop-20, 11, pdf.FontBold, colorDark)
	c.DrawText("ID: "+ctx.StudentDisplayID, 52, boxTop-38, 9, pdf.FontRegular, colorDark)
	if ctx.ClassName != "" {
		c.DrawText("Class: "+ctx.ClassName, 52, boxTop-54, 9, pdf.FontRegular, colorDark)
	}
	c.DrawText("Generated: "+ctx.GeneratedAt.Format("2006-01-02"), w-180, boxTop-38, 9, pdf.FontRegular, colorMuted)

	// Subject score table. Rows beyond the cap are silently dropped.
	tableTop := boxTop - 88
	c.FillRect(40, tableTop, w-80, 20, colorLight)
	c.DrawText("Subject", 48, tableTop+6, 10, pdf.FontBold, colorDark)
	c.DrawText("Score", 400, tableTop+6, 10, pdf.FontBold, colorDark)
	c.DrawText("Max", 480, tableTop+6, 10, pdf.FontBold, colorDark)

	rows := ctx.Subjects
	if len(rows) > maxReportSubjects {
		rows = rows[:maxReportSubjects]
	}
	rowY := tableTop
	for _, row := range rows {
		rowY -= 18
		c.DrawText(row.Name, 48, rowY+5, 9.5, pdf.FontRegular, colorDark)
		c.DrawText(pdf.Num(row.Score), 400, rowY+5, 9.5, pdf.FontRegular, colorDark)
		c.DrawText(pdf.Num(row.MaxScore), 480, rowY+5, 9.5, pdf.FontRegular, colorDark)
		c.DrawLine(40, rowY, w-40, rowY, colorBorder, 0.5)
	}

	c.DrawText(overallLine(ctx.Subjects), 48, rowY-18, 10.5, pdf.FontBold, colorDark)

	// Attendance summary callout.
	attTop := rowY - 44
	c.FillRect(40, attTop-52, w-80, 52, colorLight)
	c.DrawText("Attendance Summary", 52, attTop-18, 10.5, pdf.FontBold, colorDark)
	c.DrawText("Present: "+pdf.Num(float64(ctx.Attendance.Present)), 52, attTop-38, 9.5, pdf.FontRegular, colorDark)
	c.DrawText("Absent: "+pdf.Num(float64(ctx.Attendance.Absent)), 180, attTop-38, 9.5, pdf.FontRegular, colorDark)
	c.DrawText("Late: "+pdf.Num(float64(ctx.Attendance.Late)), 300, attTop-38, 9.5, pdf.FontRegular, colorDark)

	if ctx.CoSignatoryName != "" {
		drawSignatureBlock(c, 60, 120, 140, 9, ctx.signatoryName(), ctx.signatoryTitle())
		coTitle := ctx.CoSignatoryTitle
		if coTitle == "" {
			coTitle = "Co-signatory"
		}
		drawSignatureBlock(c, w-200, 120, 140, 9, ctx.CoSignatoryName, coTitle)
	} else {
		drawSignatureBlock(c, w-200, 120, 140, 9, ctx.signatoryName(), ctx.signatoryTitle())
	}

	c.DrawCenteredText(ctx.footerText(), w, 56, 8, pdf.FontRegular, colorMuted)

	return pdf.Spec{PageWidth: w, PageHeight: h, Ops: c.Ops()}
}
