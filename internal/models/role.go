package models

// UserRole is the closed set of roles known to the system.
type UserRole string

const (
	RoleStudent       UserRole = "ESTUDIANTE"
	RoleInstructor    UserRole = "DOCENTE"
	RoleAdministrator UserRole = "ADMINISTRACION"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdministrator:
		return true
	}
	return false
}

// Capability names an action a role may perform. Authorization decisions go
// through the capability table instead of comparing role strings inline.
type Capability string

const (
	CapManageUsers      Capability = "manage_users"
	CapManageActivities Capability = "manage_activities"
	CapJoinGroups       Capability = "join_groups"
	CapRecordAttendance Capability = "record_attendance"
	CapGradeEvaluations Capability = "grade_evaluations"
	CapExportReports    Capability = "export_reports"
)

var roleCapabilities = map[UserRole]map[Capability]struct{}{
	RoleStudent: {
		CapJoinGroups: {},
	},
	RoleInstructor: {
		CapRecordAttendance: {},
		CapGradeEvaluations: {},
		CapExportReports:    {},
	},
	RoleAdministrator: {
		CapManageUsers:      {},
		CapManageActivities: {},
		CapRecordAttendance: {},
		CapGradeEvaluations: {},
		CapExportReports:    {},
	},
}

// Can reports whether the role holds the capability.
func (r UserRole) Can(c Capability) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// Role is a stored role row; the three rows are seeded and never grow.
type Role struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"nombre" json:"nombre"`
	Description string `db:"descripcion" json:"descripcion"`
}
