package models

import "time"

// Activity is a top-level offered program (course, club, workshop).
type Activity struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"nombre" json:"nombre"`
	Description string    `db:"descripcion" json:"descripcion"`
	DateStart   *Date     `db:"fecha_inicio" json:"fecha_inicio,omitempty"`
	DateEnd     *Date     `db:"fecha_fin" json:"fecha_fin,omitempty"`
	Capacity    *int      `db:"capacidad" json:"capacidad,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Group is a scheduled cohort of an Activity with its own place, time window
// and capacity. Times are HH:MM:SS strings validated at the service boundary.
type Group struct {
	ID            string    `db:"id" json:"id"`
	ActivityID    string    `db:"actividad_id" json:"actividad_id"`
	ResponsibleID string    `db:"responsable_id" json:"responsable_id"`
	Location      string    `db:"ubicacion" json:"ubicacion"`
	DateStart     Date      `db:"fecha_inicio" json:"fecha_inicio"`
	DateEnd       Date      `db:"fecha_fin" json:"fecha_fin"`
	TimeStart     string    `db:"hora_inicio" json:"hora_inicio"`
	TimeEnd       string    `db:"hora_fin" json:"hora_fin"`
	Capacity      int       `db:"capacidad" json:"capacidad"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// GroupDetail enriches Group with activity and responsible names.
type GroupDetail struct {
	Group
	ActivityName    string `db:"actividad_nombre" json:"actividad_nombre"`
	ResponsibleName string `db:"responsable_nombre" json:"responsable_nombre"`
}
