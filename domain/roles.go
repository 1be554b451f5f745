package domain

// Casbin subjects. Each role inherits the permissions of the one before it.
const (
	RoleAnon          = "role_anon"
	RoleAuthenticated = "role_authenticated"
	RoleAdmin         = "role_admin"
)
