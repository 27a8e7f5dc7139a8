package models

// AttendanceStatus marks presence for a single date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "presente"
	AttendanceAbsent  AttendanceStatus = "ausente"
)

// Valid reports whether the status is one of the accepted values.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// Attendance is a per-date presence record. At most one row may exist per
// (usuario, grupo, fecha).
type Attendance struct {
	ID      string           `db:"id" json:"id"`
	UserID  string           `db:"usuario_id" json:"usuario_id"`
	GroupID string           `db:"grupo_id" json:"grupo_id"`
	Date    Date             `db:"fecha" json:"fecha"`
	Status  AttendanceStatus `db:"estado" json:"estado"`
}

// AttendanceSummary reports a user's attendance ratio within a group.
type AttendanceSummary struct {
	UserID        string  `db:"usuario_id" json:"usuario_id"`
	UserName      string  `db:"usuario_nombre" json:"usuario_nombre"`
	DatesAttended int     `db:"fechas_asistidas" json:"fechas_asistidas"`
	DatesTotal    int     `json:"fechas_totales"`
	Ratio         float64 `json:"proporcion"`
}

// Participation awards points to a user for a dated contribution; the date
// must fall inside the group's date range.
type Participation struct {
	ID      string `db:"id" json:"id"`
	UserID  string `db:"usuario_id" json:"usuario_id"`
	GroupID string `db:"grupo_id" json:"grupo_id"`
	Date    Date   `db:"fecha" json:"fecha"`
	Points  int    `db:"puntos" json:"puntos"`
}
