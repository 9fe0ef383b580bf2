package dto

// BootstrapRequest alta inicial de una empresa junto con su primer Gerente.
type BootstrapRequest struct {
	Company  CreateCompanyRequest `json:"company"`
	Manager  string               `json:"manager_name"`
	Email    string               `json:"manager_email"`
	Password string               `json:"password"`
}

// BootstrapResponse empresa creada y credenciales del Gerente.
type BootstrapResponse struct {
	CompanyID int64  `json:"company_id"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
}
