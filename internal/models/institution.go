package models

import "time"

// Institution owns students and supplies the identity and signatory block
// printed on generated documents.
type Institution struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Address          string    `db:"address" json:"address"`
	LogoURL          *string   `db:"logo_url" json:"logo_url,omitempty"`
	SignatoryName    *string   `db:"signatory_name" json:"signatory_name,omitempty"`
	SignatoryTitle   *string   `db:"signatory_title" json:"signatory_title,omitempty"`
	CoSignatoryName  *string   `db:"co_signatory_name" json:"co_signatory_name,omitempty"`
	CoSignatoryTitle *string   `db:"co_signatory_title" json:"co_signatory_title,omitempty"`
	FooterText       *string   `db:"footer_text" json:"footer_text,omitempty"`
	Active           bool      `db:"active" json:"active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
