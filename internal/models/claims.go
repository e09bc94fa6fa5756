package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Loan permissions
	PermissionLoanApply = "loan:apply"
	PermissionLoanRead  = "loan:read"

	// Registry permissions (admin screens)
	PermissionRegistryRead  = "registry:read"
	PermissionRegistryWrite = "registry:write"

	// User management permissions
	PermissionUserRead       = "user:read"
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionLoanRead,
			PermissionRegistryRead,
			PermissionRegistryWrite,
			PermissionUserRead,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleCustomer:
		return []string{
			PermissionLoanApply,
			PermissionLoanRead,
			PermissionUserRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
