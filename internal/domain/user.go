package domain

// Role enumerates portal roles.
type Role string

const (
	RoleRequester Role = "solicitante"
	RoleSupport   Role = "soporte"
	RoleAdmin     Role = "administrador"
)

// User is the authenticated session identity returned by login and /auth/me.
type User struct {
	UserID   int    `json:"usuario_id"`
	FullName string `json:"nombre_completo"`
	Email    string `json:"correo"`
	Role     Role   `json:"rol"`
	RoleID   int    `json:"rol_id"`
	Unit     string `json:"unidad"`
	UnitID   *int   `json:"unidad_id"`
	Active   int    `json:"activo"`
}

// UserCreateInput is the admin payload for POST /api/new-user.
type UserCreateInput struct {
	FullName string `json:"nombre_completo"`
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
	RoleID   int    `json:"rol_id"`
	UnitID   *int   `json:"unidad_id,omitempty"`
}

// UserUpdateInput carries the editable user fields. Nil fields are omitted.
type UserUpdateInput struct {
	Password *string `json:"contrasena,omitempty"`
	RoleID   *int    `json:"rol_id,omitempty"`
	UnitID   *int    `json:"unidad_id,omitempty"`
	Active   *int    `json:"activo,omitempty"`
}
