package dto

// AdminLoginRequest login amministratore con la master password.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// EmployeeLoginRequest login dipendente. La master password è accettata al
// posto di quella personale (passepartout, comportamento documentato).
type EmployeeLoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// SessionUser identità contenuta nella sessione.
type SessionUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"` // "admin" | "employee"
	LoginTime string `json:"login_time"`
}

// LoginResponse token di sessione più identità.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// ChangeMasterPasswordRequest cambio della master password (solo admin).
type ChangeMasterPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
