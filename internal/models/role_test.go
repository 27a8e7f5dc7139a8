package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleInstructor.Valid())
	assert.True(t, RoleAdministrator.Valid())
	assert.False(t, UserRole("DIRECTOR").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleStudent.Can(CapJoinGroups))
	assert.False(t, RoleStudent.Can(CapManageUsers))
	assert.False(t, RoleStudent.Can(CapRecordAttendance))

	assert.True(t, RoleInstructor.Can(CapRecordAttendance))
	assert.True(t, RoleInstructor.Can(CapGradeEvaluations))
	assert.True(t, RoleInstructor.Can(CapExportReports))
	assert.False(t, RoleInstructor.Can(CapJoinGroups))

	assert.True(t, RoleAdministrator.Can(CapManageUsers))
	assert.True(t, RoleAdministrator.Can(CapManageActivities))
	assert.False(t, RoleAdministrator.Can(CapJoinGroups))

	assert.False(t, UserRole("DIRECTOR").Can(CapJoinGroups))
}
