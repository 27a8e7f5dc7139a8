package models

import "time"

// Evaluation holds an instructor's raw score for a user in a group plus the
// derived final score. The final score is recomputed from attendance on
// every create and update; it is never set directly.
type Evaluation struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"usuario_id" json:"usuario_id"`
	GroupID    string    `db:"grupo_id" json:"grupo_id"`
	Score      float64   `db:"calificacion" json:"calificacion"`
	FinalScore float64   `db:"calificacion_final" json:"calificacion_final"`
	Comments   string    `db:"comentarios" json:"comentarios"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// EvaluationDetail enriches Evaluation with user context for reports.
type EvaluationDetail struct {
	Evaluation
	UserName string `db:"usuario_nombre" json:"usuario_nombre"`
}
