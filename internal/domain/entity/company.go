package entity

import "time"

// Company representa una empresa cliente. Es el límite de visibilidad de usuarios y tareas.
type Company struct {
	ID        int64
	Name      string
	TaxID     string // RUC
	Address   string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Calculados en lectura.
	TaskCount int
	UserCount int
}
