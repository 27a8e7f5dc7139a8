package models

import "time"

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

// Wire values kept from the legacy system.
const (
	EnrollmentStatusEnrolled EnrollmentStatus = "inscrito"
	EnrollmentStatusWaiting  EnrollmentStatus = "en espera"
)

// Enrollment links a user to a group. At most one active enrollment may
// exist per (usuario, grupo) pair.
type Enrollment struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"usuario_id" json:"usuario_id"`
	GroupID   string           `db:"grupo_id" json:"grupo_id"`
	Status    EnrollmentStatus `db:"estado" json:"estado"`
	CreatedAt time.Time        `db:"fecha_inscripcion" json:"fecha_inscripcion"`
}

// EnrollmentDetail enriches Enrollment with user and group context.
type EnrollmentDetail struct {
	Enrollment
	UserName      string `db:"usuario_nombre" json:"usuario_nombre"`
	GroupLocation string `db:"grupo_ubicacion" json:"grupo_ubicacion"`
	ActivityID    string `db:"actividad_id" json:"actividad_id"`
	ActivityName  string `db:"actividad_nombre" json:"actividad_nombre"`
}

// AdmissionOutcome states how an admission request was resolved.
type AdmissionOutcome string

const (
	AdmissionEnrolled   AdmissionOutcome = "inscrito"
	AdmissionWaitlisted AdmissionOutcome = "en espera"
)

// AdmissionResult is returned by the admission workflow: exactly one of
// Enrollment or WaitlistEntry is set.
type AdmissionResult struct {
	Outcome       AdmissionOutcome `json:"resultado"`
	Enrollment    *Enrollment      `json:"inscripcion,omitempty"`
	WaitlistEntry *WaitlistEntry   `json:"lista_espera,omitempty"`
}

// WaitlistEntry parks a user waiting for space in any group of an activity.
// Unique per (usuario, actividad) and mutually exclusive with an enrolled
// enrollment in any group of that activity. RegisteredAt is a full timestamp
// so same-day registrants keep their arrival order.
type WaitlistEntry struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"usuario_id" json:"usuario_id"`
	ActivityID   string    `db:"actividad_id" json:"actividad_id"`
	RegisteredAt time.Time `db:"fecha_registro" json:"fecha_registro"`
}
