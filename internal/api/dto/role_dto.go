package dto

import "github.com/spec-kit/hrms-service/internal/domain"

// RoleRequest payload for role create/update. Permissions use the wire
// shape of the stored grants: a level string or a page map per module.
type RoleRequest struct {
	Name        string               `json:"name"`
	Permissions domain.PermissionSet `json:"permissions"`
}

// RoleResponse is the role shape returned by the API.
type RoleResponse struct {
	Name        string               `json:"name"`
	Permissions domain.PermissionSet `json:"permissions"`
}

// AssignRoleRequest changes an account's role tag.
type AssignRoleRequest struct {
	Role string `json:"role"`
}
