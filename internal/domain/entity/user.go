package entity

// Roles válidos emitidos por el backend en el JWT.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)
