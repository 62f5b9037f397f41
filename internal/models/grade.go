package models

import "time"

// GradeRow is a single scored assessment with its subject name resolved.
type GradeRow struct {
	Subject    string    `db:"subject" json:"subject"`
	Score      float64   `db:"score" json:"score"`
	MaxScore   float64   `db:"max_score" json:"max_score"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}
