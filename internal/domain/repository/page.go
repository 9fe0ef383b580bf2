package repository

// Page ventana de resultados ya normalizada por la capa de aplicación.
type Page struct {
	Limit  int
	Offset int
}
