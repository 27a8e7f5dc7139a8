package models

import "time"

// User represents an application user stored in the usuarios table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"nombre" json:"nombre"`
	Email        string    `db:"correo" json:"correo"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"rol" json:"rol"`
	Active       bool      `db:"activo" json:"activo"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role   *UserRole
	Active *bool
	Search string
}

// Profile holds the optional academic profile attached to a user.
type Profile struct {
	ID            string  `db:"id" json:"id"`
	UserID        string  `db:"usuario_id" json:"usuario_id"`
	Phone         *string `db:"telefono" json:"telefono,omitempty"`
	Address       *string `db:"direccion" json:"direccion,omitempty"`
	Career        *string `db:"carrera" json:"carrera,omitempty"`
	ControlNumber int     `db:"numero_control" json:"numero_control"`
	ImageURL      *string `db:"imagen_url" json:"imagen_url,omitempty"`
}
