package domain

// Role names carried in access-token claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
