// Package templates contains the page-layout builders for the three document
// families: ID card, certificate and tabular report. Builders compose
// content-stream primitives into a pdf.Spec and never perform I/O.
package templates

import (
	"strconv"
	"time"

	"github.com/noah-isme/sma-records-api/internal/models"
	"github.com/noah-isme/sma-records-api/pkg/pdf"
)

// Page dimensions in PDF points.
const (
	CardWidth  = 242.65 // CR80 landscape
	CardHeight = 153.07
	A4Width    = 595.28
	A4Height   = 841.89
)

// Palette shared by all three layouts.
const (
	colorPrimary = "#1d4ed8"
	colorDark    = "#0f172a"
	colorMuted   = "#64748b"
	colorBorder  = "#cbd5e1"
	colorLight   = "#f1f5f9"
	colorWhite   = "#ffffff"
	colorAccent  = "#b45309"
)

const maxReportSubjects = 10

// SubjectScore is one row of the report's score table.
type SubjectScore struct {
	Name     string
	Score    float64
	MaxScore float64
}

// AttendanceTally summarises attendance counts by status.
type AttendanceTally struct {
	Present int
	Absent  int
	Late    int
}

// Context carries everything a layout builder may print. All signatory
// fields are optional and fall back to generic labels.
type Context struct {
	InstitutionName    string
	InstitutionAddress string

	StudentDisplayID string
	StudentFirstName string
	StudentLastName  string
	ClassName        string

	Subjects   []SubjectScore
	Attendance AttendanceTally

	GeneratedAt time.Time

	SignatoryName    string
	SignatoryTitle   string
	CoSignatoryName  string
	CoSignatoryTitle string
	FooterText       string
}

func (c Context) studentName() string {
	name := c.StudentFirstName
	if c.StudentLastName != "" {
		if name != "" {
			name += " "
		}
		name += c.StudentLastName
	}
	if name == "" {
		name = "Unnamed Student"
	}
	return name
}

func (c Context) signatoryName() string {
	if c.SignatoryName != "" {
		return c.SignatoryName
	}
	return "Principal"
}

func (c Context) signatoryTitle() string {
	if c.SignatoryTitle != "" {
		return c.SignatoryTitle
	}
	return "Principal"
}

func (c Context) footerText() string {
	if c.FooterText != "" {
		return c.FooterText
	}
	return "Generated by SMA Records"
}

// Build dispatches to the layout builder for the given template category.
// Unknown categories render through the report layout.
func Build(category models.TemplateCategory, ctx Context, title, periodLabel string, logo *pdf.Image) pdf.Spec {
	switch category {
	case models.CategoryIDCard:
		return BuildIDCard(ctx, title, periodLabel, logo)
	case models.CategoryCertificate:
		return BuildCertificate(ctx, title, periodLabel, logo)
	case models.CategoryReport:
		return BuildReport(ctx, title, periodLabel, logo)
	default:
		return BuildReport(ctx, title, periodLabel, logo)
	}
}

// drawLogoBox places the embedded logo fitted inside the box, or a stroked
// placeholder labelled LOGO when none is available.
func drawLogoBox(c *pdf.Content, logo *pdf.Image, x, y, w, h float64) {
	if logo == nil || logo.Width <= 0 || logo.Height <= 0 {
		c.StrokeRect(x, y, w, h, colorBorder, 1)
		c.DrawText("LOGO", x+w/2-12, y+h/2-3, 6, pdf.FontRegular, colorMuted)
		return
	}
	fw, fh := w, h
	ratio := float64(logo.Width) / float64(logo.Height)
	if ratio > w/h {
		fh = w / ratio
	} else {
		fw = h * ratio
	}
	c.DrawImage(x+(w-fw)/2, y+(h-fh)/2, fw, fh)
}

// drawSignatureBlock renders a signing rule with the signer's name and title
// beneath it.
func drawSignatureBlock(c *pdf.Content, x, y, width, size float64, name, title string) {
	c.DrawLine(x, y, x+width, y, colorDark, 0.8)
	c.DrawText(name, x, y-size-2, size, pdf.FontBold, colorDark)
	c.DrawText(title, x, y-2*size-5, size-1, pdf.FontRegular, colorMuted)
}

// overallLine computes the aggregate score line for the report layout.
// A zero max never divides.
func overallLine(subjects []SubjectScore) string {
	var total, max float64
	for _, s := range subjects {
		total += s.Score
		max += s.MaxScore
	}
	pct := 0.0
	if max > 0 {
		pct = total / max * 100
	}
	return "Overall: " + pdf.Num(total) + "/" + pdf.Num(max) + " (" + strconv.FormatFloat(pct, 'f', 2, 64) + "%)"
}
