package dto

// TaskRequest alta y edición de tareas. La empresa la fija siempre el token.
type TaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskSearchRequest filtros de búsqueda de tareas.
type TaskSearchRequest struct {
	PageQuery
	Name string `json:"name"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskListResponse página de tareas.
type TaskListResponse = SearchResult[TaskResponse]
