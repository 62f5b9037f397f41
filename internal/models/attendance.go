package models

// Attendance statuses persisted by the attendance collaborator. Only the
// first three feed the document summary; other statuses are ignored there.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
	AttendanceExcused = "EXCUSED"
	AttendanceSick    = "SICK"
)

// AttendanceStatusCount is one row of a grouped status tally.
type AttendanceStatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}
