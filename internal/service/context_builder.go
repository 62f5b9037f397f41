package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/noah-isme/sma-records-api/internal/models"
	"github.com/noah-isme/sma-records-api/internal/templates"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
)

const maxRecentGrades = 24

// defaultSubjects backfills the report table for students without any
// recorded grade, so a brand-new student still renders a complete document.
var defaultSubjects = []string{"Mathematics", "English", "Science", "Social Studies", "Arts"}

type institutionStore interface {
	Get(ctx context.Context, id string) (*models.Institution, error)
	ListActive(ctx context.Context) ([]models.Institution, error)
}

type studentStore interface {
	GetForInstitution(ctx context.Context, studentID, institutionID string) (*models.Student, error)
	ListActiveByInstitution(ctx context.Context, institutionID string) ([]models.Student, error)
}

type gradeStore interface {
	RecentByStudent(ctx context.Context, studentID string, limit int) ([]models.GradeRow, error)
}

type attendanceStore interface {
	StatusCounts(ctx context.Context, studentID string) ([]models.AttendanceStatusCount, error)
}

// DocumentContext bundles everything the render pipeline needs for one
// document: the flattened layout context plus the institution's logo
// reference, resolved lazily by the renderer.
type DocumentContext struct {
	Render      templates.Context
	LogoRef     string
	Student     *models.Student
	Institution *models.Institution
}

// ContextBuilder assembles the document context from the persistence
// collaborators.
type ContextBuilder struct {
	institutions institutionStore
	students     studentStore
	grades       gradeStore
	attendance   attendanceStore
}

// NewContextBuilder constructs a ContextBuilder.
func NewContextBuilder(institutions institutionStore, students studentStore, grades gradeStore, attendance attendanceStore) *ContextBuilder {
	return &ContextBuilder{
		institutions: institutions,
		students:     students,
		grades:       grades,
		attendance:   attendance,
	}
}

// Build gathers institution, student, grade and attendance data for one
// student scoped to an institution. A student outside the institution fails
// closed before any rendering work happens.
func (b *ContextBuilder) Build(ctx context.Context, institutionID, studentID string) (*DocumentContext, error) {
	inst, err := b.institutions.Get(ctx, institutionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load institution")
	}

	student, err := b.students.GetForInstitution(ctx, studentID, institutionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found for institution")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	grades, err := b.grades.RecentByStudent(ctx, studentID, maxRecentGrades)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}

	counts, err := b.attendance.StatusCounts(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	render := templates.Context{
		InstitutionName:    inst.Name,
		InstitutionAddress: inst.Address,
		StudentDisplayID:   student.NIS,
		StudentFirstName:   student.FirstName,
		StudentLastName:    student.LastName,
		Subjects:           subjectRows(grades),
		Attendance:         attendanceTally(counts),
		GeneratedAt:        time.Now().UTC(),
		SignatoryName:      deref(inst.SignatoryName),
		SignatoryTitle:     deref(inst.SignatoryTitle),
		CoSignatoryName:    deref(inst.CoSignatoryName),
		CoSignatoryTitle:   deref(inst.CoSignatoryTitle),
		FooterText:         deref(inst.FooterText),
	}
	if student.ClassName != nil {
		render.ClassName = *student.ClassName
	}

	doc := &DocumentContext{
		Render:      render,
		Student:     student,
		Institution: inst,
	}
	if inst.LogoURL != nil {
		doc.LogoRef = *inst.LogoURL
	}
	return doc, nil
}

// subjectRows deduplicates grades per subject, first seen wins under the
// newest-first ordering of the query. Students with no grades get the
// default subject rows at 0/100.
func subjectRows(grades []models.GradeRow) []templates.SubjectScore {
	if len(grades) == 0 {
		rows := make([]templates.SubjectScore, 0, len(defaultSubjects))
		for _, name := range defaultSubjects {
			rows = append(rows, templates.SubjectScore{Name: name, Score: 0, MaxScore: 100})
		}
		return rows
	}

	seen := make(map[string]struct{}, len(grades))
	rows := make([]templates.SubjectScore, 0, len(grades))
	for _, g := range grades {
		if _, ok := seen[g.Subject]; ok {
			continue
		}
		seen[g.Subject] = struct{}{}
		rows = append(rows, templates.SubjectScore{Name: g.Subject, Score: g.Score, MaxScore: g.MaxScore})
	}
	return rows
}

// attendanceTally keeps only the three summarised statuses; everything else
// is ignored for the document.
func attendanceTally(counts []models.AttendanceStatusCount) templates.AttendanceTally {
	var tally templates.AttendanceTally
	for _, c := range counts {
		switch c.Status {
		case models.AttendancePresent:
			tally.Present = c.Count
		case models.AttendanceAbsent:
			tally.Absent = c.Count
		case models.AttendanceLate:
			tally.Late = c.Count
		}
	}
	return tally
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
