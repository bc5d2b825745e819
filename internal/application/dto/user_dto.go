package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	FullName     string   `json:"full_name"`
	AccessLevel  string   `json:"access_level"` // viewer, warehouseman, admin, superadmin
	WarehouseIDs []string `json:"warehouses"`
}

// UpdateUserRequest edición parcial de usuario.
type UpdateUserRequest struct {
	Password     *string   `json:"password"`
	FullName     *string   `json:"full_name"`
	AccessLevel  *string   `json:"access_level"`
	WarehouseIDs *[]string `json:"warehouses"`
	Active       *bool     `json:"active"`
}

// UserResponse representación HTTP de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	AccessLevel  string    `json:"access_level"`
	WarehouseIDs []string  `json:"warehouses"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AuditLogResponse entrada del log de operaciones.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLogListResponse listado paginado del log de operaciones.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
