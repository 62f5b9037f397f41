package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/sma-records-api/internal/models"
)

const maxSlugSegment = 80

// DefaultPeriodLabel derives the canonical period label for a period type.
// The WEEKLY shape uses month and day rather than the ISO week number; the
// format is kept as-is because stored natural keys depend on it.
func DefaultPeriodLabel(periodType models.RecordPeriodType, now time.Time) string {
	switch periodType {
	case models.PeriodWeekly:
		return fmt.Sprintf("%04d-W%02d-%02d", now.Year(), int(now.Month()), now.Day())
	case models.PeriodMonthly:
		return now.Format("2006-01")
	case models.PeriodQuarterly:
		quarter := (int(now.Month()) + 2) / 3
		return fmt.Sprintf("%04d-Q%d", now.Year(), quarter)
	case models.PeriodAnnual:
		return fmt.Sprintf("%04d", now.Year())
	default:
		return now.Format("2006-01-02")
	}
}

// recordTitle maps a record type to its printed document title.
func recordTitle(recordType models.StudentRecordType) string {
	switch recordType {
	case models.RecordTypeIDCard:
		return "Student ID Card"
	case models.RecordTypeResultSheet:
		return "Result Sheet"
	case models.RecordTypeAttendanceRecord:
		return "Attendance Record"
	case models.RecordTypeBehaviorTracking:
		return "Behavior Tracking Report"
	case models.RecordTypeFinalExamCertificate:
		return "Final Exam Certificate"
	case models.RecordTypeCharacterCertificate:
		return "Certificate of Character"
	case models.RecordTypeExtraSkillsCert:
		return "Extra Skills Certificate"
	case models.RecordTypeTransferCertificate:
		return "Transfer Certificate"
	case models.RecordTypeWeeklyProgress:
		return "Weekly Progress Report"
	case models.RecordTypeMonthlyProgress:
		return "Monthly Progress Report"
	case models.RecordTypeQuarterlyProgress:
		return "Quarterly Progress Report"
	case models.RecordTypeAnnualFinalReport:
		return "Annual Final Report"
	default:
		return "Student Record"
	}
}

// slugify lowercases a filename segment, collapses non-alphanumeric runs
// into single hyphens and caps the segment length.
func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	out := b.String()
	if len(out) > maxSlugSegment {
		out = strings.TrimRight(out[:maxSlugSegment], "-")
	}
	return out
}

// recordFileName builds the stored artifact name from its slugged parts.
func recordFileName(displayID string, recordType models.StudentRecordType, periodLabel string) string {
	return fmt.Sprintf("%s-%s-%s.pdf", slugify(displayID), slugify(string(recordType)), slugify(periodLabel))
}
