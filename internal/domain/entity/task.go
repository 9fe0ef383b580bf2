package entity

// Task tarea registrada por una empresa.
type Task struct {
	ID          int64
	CompanyID   int64
	Name        string
	Description string

	CompanyName string // unido en lectura
}
