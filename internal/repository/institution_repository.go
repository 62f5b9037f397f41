package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-records-api/internal/models"
)

// InstitutionRepository reads institution identity and signatory settings.
type InstitutionRepository struct {
	db *sqlx.DB
}

// NewInstitutionRepository constructs an InstitutionRepository.
func NewInstitutionRepository(db *sqlx.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

const institutionColumns = `id, name, address, logo_url, signatory_name, signatory_title,
        co_signatory_name, co_signatory_title, footer_text, active, created_at, updated_at`

// Get fetches a single institution by ID.
func (r *InstitutionRepository) Get(ctx context.Context, id string) (*models.Institution, error) {
	query := fmt.Sprintf("SELECT %s FROM institutions WHERE id = $1", institutionColumns)
	var inst models.Institution
	if err := r.db.GetContext(ctx, &inst, query, id); err != nil {
		return nil, fmt.Errorf("get institution: %w", err)
	}
	return &inst, nil
}

// ListActive returns every active institution, used by the periodic batch.
func (r *InstitutionRepository) ListActive(ctx context.Context) ([]models.Institution, error) {
	query := fmt.Sprintf("SELECT %s FROM institutions WHERE active = true ORDER BY name", institutionColumns)
	var institutions []models.Institution
	if err := r.db.SelectContext(ctx, &institutions, query); err != nil {
		return nil, fmt.Errorf("list active institutions: %w", err)
	}
	return institutions, nil
}
