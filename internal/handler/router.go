package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/middleware"
	"github.com/backendac/actividades-api/internal/models"
	"github.com/backendac/actividades-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Profiles      *ProfileHandler
	Roles         *RoleHandler
	Activities    *ActivityHandler
	Groups        *GroupHandler
	Enrollments   *EnrollmentHandler
	Waitlist      *WaitlistHandler
	Attendance    *AttendanceHandler
	Participation *ParticipationHandler
	Evaluations   *EvaluationHandler
}

// RegisterRoutes mounts the API under the prefix. Login, refresh and user
// registration stay public; everything else requires a live session.
func RegisterRoutes(r *gin.Engine, prefix string, auth *service.AuthService, h Handlers) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/usuarios", h.Users.Create)

	secured := api.Group("")
	secured.Use(middleware.JWT(auth))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.PUT("/auth/password", h.Auth.ChangePassword)

	secured.GET("/usuarios", middleware.RequireCapability(models.CapManageUsers), h.Users.List)
	secured.GET("/usuarios/:id", middleware.RequireCapabilityOrSelf(models.CapManageUsers), h.Users.Get)
	secured.PUT("/usuarios/:id", middleware.RequireCapability(models.CapManageUsers), h.Users.Update)
	secured.DELETE("/usuarios/:id", middleware.RequireCapability(models.CapManageUsers), h.Users.Delete)
	secured.GET("/usuarios/:id/perfil", middleware.RequireCapabilityOrSelf(models.CapManageUsers), h.Profiles.Get)
	secured.PUT("/usuarios/:id/perfil", middleware.RequireCapabilityOrSelf(models.CapManageUsers), h.Profiles.Upsert)
	secured.DELETE("/usuarios/:id/perfil", middleware.RequireCapabilityOrSelf(models.CapManageUsers), h.Profiles.Delete)
	secured.GET("/usuarios/:id/inscripciones", middleware.RequireCapabilityOrSelf(models.CapManageUsers), h.Enrollments.ListByUser)
	secured.GET("/usuarios/:id/lista-espera", middleware.RequireCapabilityOrSelf(models.CapManageUsers), h.Waitlist.ListByUser)

	secured.GET("/roles", h.Roles.List)
	secured.GET("/roles/:id", h.Roles.Get)

	secured.GET("/actividades", h.Activities.List)
	secured.GET("/actividades/:id", h.Activities.Get)
	secured.GET("/actividades/:id/grupos", h.Activities.Groups)
	secured.GET("/actividades/:id/lista-espera", h.Waitlist.ListByActivity)
	secured.POST("/actividades", middleware.RequireCapability(models.CapManageActivities), h.Activities.Create)
	secured.PUT("/actividades/:id", middleware.RequireCapability(models.CapManageActivities), h.Activities.Update)
	secured.DELETE("/actividades/:id", middleware.RequireCapability(models.CapManageActivities), h.Activities.Delete)

	// Group writes carry no capability gate here: the service compares the
	// caller's role against the configured manager set.
	secured.GET("/grupos", h.Groups.List)
	secured.GET("/grupos/:id", h.Groups.Get)
	secured.POST("/grupos", h.Groups.Create)
	secured.PUT("/grupos/:id", h.Groups.Update)
	secured.DELETE("/grupos/:id", h.Groups.Delete)
	secured.GET("/grupos/:id/inscripciones", h.Enrollments.ListByGroup)
	secured.GET("/grupos/:id/asistencias", h.Attendance.ListByGroup)
	secured.GET("/grupos/:id/asistencias/resumen", h.Attendance.Summary)
	secured.GET("/grupos/:id/participaciones", h.Participation.ListByGroup)
	secured.GET("/grupos/:id/evaluaciones", h.Evaluations.ListByGroup)
	secured.GET("/grupos/:id/evaluaciones/exportar", middleware.RequireCapability(models.CapExportReports), h.Evaluations.Export)

	secured.POST("/inscripciones", h.Enrollments.Admit)
	secured.DELETE("/inscripciones/:id", h.Enrollments.Delete)

	secured.POST("/lista-espera", h.Waitlist.Join)
	secured.DELETE("/lista-espera/:id", h.Waitlist.Leave)

	secured.POST("/asistencias", middleware.RequireCapability(models.CapRecordAttendance), h.Attendance.Record)
	secured.PUT("/asistencias/:id", middleware.RequireCapability(models.CapRecordAttendance), h.Attendance.Update)
	secured.DELETE("/asistencias/:id", middleware.RequireCapability(models.CapRecordAttendance), h.Attendance.Delete)

	secured.POST("/participaciones", middleware.RequireCapability(models.CapRecordAttendance), h.Participation.Create)
	secured.PUT("/participaciones/:id", middleware.RequireCapability(models.CapRecordAttendance), h.Participation.Update)
	secured.DELETE("/participaciones/:id", middleware.RequireCapability(models.CapRecordAttendance), h.Participation.Delete)

	secured.POST("/evaluaciones", middleware.RequireCapability(models.CapGradeEvaluations), h.Evaluations.Upsert)
	secured.DELETE("/evaluaciones/:id", middleware.RequireCapability(models.CapGradeEvaluations), h.Evaluations.Delete)
}
