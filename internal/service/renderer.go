package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-records-api/internal/models"
	"github.com/noah-isme/sma-records-api/internal/templates"
	"github.com/noah-isme/sma-records-api/pkg/pdf"
)

// LogoSource resolves a logo reference into an embeddable image. A nil
// return means "no logo"; the layouts degrade to a placeholder.
type LogoSource interface {
	Load(ctx context.Context, ref string) *pdf.Image
}

// TemplateRenderer drives the layout builders and the PDF assembler.
type TemplateRenderer struct {
	logos  LogoSource
	logger *zap.Logger
}

// NewTemplateRenderer constructs a TemplateRenderer.
func NewTemplateRenderer(logos LogoSource, logger *zap.Logger) *TemplateRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateRenderer{logos: logos, logger: logger}
}

// Render produces the final PDF bytes for a document context.
func (r *TemplateRenderer) Render(ctx context.Context, doc *DocumentContext, category models.TemplateCategory, title, periodLabel string) ([]byte, error) {
	var logo *pdf.Image
	if r.logos != nil && doc.LogoRef != "" {
		logo = r.logos.Load(ctx, doc.LogoRef)
		if logo == nil {
			r.logger.Debug("logo unavailable, rendering placeholder",
				zap.String("student_id", doc.Student.ID))
		}
	}

	spec := templates.Build(category, doc.Render, title, periodLabel, logo)
	return pdf.Build(spec, logo)
}
