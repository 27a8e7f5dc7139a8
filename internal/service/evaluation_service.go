package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/export"
)

type evaluationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Evaluation, error)
	FindByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Evaluation, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.EvaluationDetail, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id string) error
}

type attendanceRatioReader interface {
	Ratio(ctx context.Context, userID, groupID string) (float64, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// GradingConfig parameterises the final-score formula.
type GradingConfig struct {
	AttendanceWeight float64
	ScoreWeight      float64
	ClampMin         float64
	ClampMax         float64
}

// EvaluationRequest carries an instructor's score for a user in a group.
type EvaluationRequest struct {
	UserID   string  `json:"usuario_id" validate:"required"`
	GroupID  string  `json:"grupo_id" validate:"required"`
	Score    float64 `json:"calificacion" validate:"gte=0,lte=5"`
	Comments string  `json:"comentarios"`
}

// EvaluationService stores instructor scores and derives the final score
// from attendance on every write. Each user keeps at most one evaluation
// per group: a second submission updates the existing row.
type EvaluationService struct {
	repo       evaluationRepository
	attendance attendanceRatioReader
	groups     groupReader
	csv        csvRenderer
	pdf        pdfRenderer
	validator  *validator.Validate
	logger     *zap.Logger
	config     GradingConfig
}

// NewEvaluationService constructs EvaluationService.
func NewEvaluationService(repo evaluationRepository, attendance attendanceRatioReader, groups groupReader, validate *validator.Validate, logger *zap.Logger, config GradingConfig) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.AttendanceWeight == 0 {
		config.AttendanceWeight = 10
	}
	if config.ScoreWeight == 0 {
		config.ScoreWeight = 0.9
	}
	if config.ClampMin == 0 {
		config.ClampMin = 1
	}
	if config.ClampMax == 0 {
		config.ClampMax = 100
	}
	return &EvaluationService{
		repo:       repo,
		attendance: attendance,
		groups:     groups,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		validator:  validate,
		logger:     logger,
		config:     config,
	}
}

// ListByGroup returns the evaluations of a group with user names.
func (s *EvaluationService) ListByGroup(ctx context.Context, groupID string) ([]models.EvaluationDetail, error) {
	evaluations, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las evaluaciones")
	}
	return evaluations, nil
}

// Get returns an evaluation by id.
func (s *EvaluationService) Get(ctx context.Context, id string) (*models.Evaluation, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluación no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la evaluación")
	}
	return evaluation, nil
}

// Upsert stores the score and recomputes the final score from the user's
// current attendance ratio.
func (s *EvaluationService) Upsert(ctx context.Context, req EvaluationRequest) (*models.Evaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de evaluación inválidos")
	}
	// Scores carry at most one decimal, like the legacy column.
	if math.Abs(req.Score*10-math.Round(req.Score*10)) > 1e-9 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la calificación admite un solo decimal")
	}

	if _, err := s.groups.FindByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}

	ratio, err := s.attendance.Ratio(ctx, req.UserID, req.GroupID)
	if err != nil {
		return nil, err
	}
	final := s.computeFinal(ratio, req.Score)

	existing, err := s.repo.FindByUserAndGroup(ctx, req.UserID, req.GroupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la evaluación")
	}

	if existing == nil {
		evaluation := &models.Evaluation{
			UserID:     req.UserID,
			GroupID:    req.GroupID,
			Score:      req.Score,
			FinalScore: final,
			Comments:   req.Comments,
		}
		if err := s.repo.Create(ctx, evaluation); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear la evaluación")
		}
		return evaluation, nil
	}

	existing.Score = req.Score
	existing.FinalScore = final
	existing.Comments = req.Comments
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la evaluación")
	}
	return existing, nil
}

// Delete removes an evaluation.
func (s *EvaluationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "evaluación no encontrada")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la evaluación")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la evaluación")
	}
	return nil
}

// ExportFormat selects the rendered report format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// Export renders the group's evaluations as CSV or PDF bytes.
func (s *EvaluationService) Export(ctx context.Context, groupID string, format ExportFormat) ([]byte, string, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}
	evaluations, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las evaluaciones")
	}

	dataset := export.Dataset{
		Headers: []string{"usuario", "calificacion", "calificacion_final", "comentarios"},
	}
	for _, e := range evaluations {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"usuario":            e.UserName,
			"calificacion":       fmt.Sprintf("%.1f", e.Score),
			"calificacion_final": fmt.Sprintf("%.1f", e.FinalScore),
			"comentarios":        e.Comments,
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo generar el CSV")
		}
		return payload, "text/csv", nil
	case ExportFormatPDF:
		title := "Evaluaciones " + group.Location
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo generar el PDF")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "formato de exportación desconocido")
	}
}

// computeFinal derives the stored final score. Attendance contributes its
// ratio times the attendance weight, the raw score contributes scaled by the
// score weight; the sum is clamped and then rounded half-up to one decimal.
func (s *EvaluationService) computeFinal(ratio, score float64) float64 {
	final := ratio*s.config.AttendanceWeight + score*s.config.ScoreWeight
	if final < s.config.ClampMin {
		final = s.config.ClampMin
	}
	if final > s.config.ClampMax {
		final = s.config.ClampMax
	}
	return math.Floor(final*10+0.5) / 10
}
