package dto

// CreateEmployeeRequest nuovo dipendente: l'id è derivato dal nome (slug).
type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateEmployeeRequest modifica di un dipendente esistente (l'id non cambia).
type UpdateEmployeeRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// EmployeeResponse dipendente senza password.
type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateSiteRequest nuovo cantiere con monte minuti standard.
type CreateSiteRequest struct {
	Name            string `json:"name"`
	StandardMinutes int    `json:"standard_minutes"`
}

// UpdateSiteRequest modifica di un cantiere esistente.
type UpdateSiteRequest struct {
	Name            string `json:"name"`
	StandardMinutes int    `json:"standard_minutes"`
}

// SiteResponse cantiere con il monte ore anche in formato HH:MM.
type SiteResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	StandardMinutes int    `json:"standard_minutes"`
	StandardHHMM    string `json:"standard_hhmm"`
}

// StatisticsResponse statistiche generali dei registri.
type StatisticsResponse struct {
	TotalEmployees int    `json:"total_employees"`
	TotalSites     int    `json:"total_sites"`
	GeneratedAt    string `json:"generated_at"`
}
