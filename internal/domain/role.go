package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// PermissionLevel is the access level granted for a module or page.
// Levels form a total order: none < view < full.
type PermissionLevel string

const (
	PermissionNone PermissionLevel = "none"
	PermissionView PermissionLevel = "view"
	PermissionFull PermissionLevel = "full"
)

// Rank maps a level onto the total order. Unknown values rank as none.
func (l PermissionLevel) Rank() int {
	switch l {
	case PermissionView:
		return 1
	case PermissionFull:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether l satisfies the required level.
func (l PermissionLevel) AtLeast(required PermissionLevel) bool {
	return l.Rank() >= required.Rank()
}

// Valid reports whether the value is one of the defined levels.
func (l PermissionLevel) Valid() bool {
	switch l {
	case PermissionNone, PermissionView, PermissionFull:
		return true
	}
	return false
}

// ModuleGrant is the grant stored for one module. Legacy role documents
// stored a bare level string for a module; newer ones store a page map.
// Both shapes round-trip through JSON.
type ModuleGrant struct {
	Level *PermissionLevel
	Pages map[string]PermissionLevel
}

// UnmarshalJSON accepts either "full" or {"Payroll Management":"view"}.
func (g *ModuleGrant) UnmarshalJSON(data []byte) error {
	var level PermissionLevel
	if err := json.Unmarshal(data, &level); err == nil {
		g.Level = &level
		g.Pages = nil
		return nil
	}
	var pages map[string]PermissionLevel
	if err := json.Unmarshal(data, &pages); err != nil {
		return fmt.Errorf("module grant must be a level string or a page map: %w", err)
	}
	g.Level = nil
	g.Pages = pages
	return nil
}

// MarshalJSON writes back whichever shape the grant holds.
func (g ModuleGrant) MarshalJSON() ([]byte, error) {
	if g.Level != nil {
		return json.Marshal(*g.Level)
	}
	if g.Pages == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g.Pages)
}

// PermissionSet maps module name to its grant.
type PermissionSet map[string]ModuleGrant

// Role is a named permission bundle. Roles are global by name; assignment
// is per organization through User.Role.
type Role struct {
	Name        string
	Permissions PermissionSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Grant resolves the stored level for (module, page). Absent modules,
// absent pages, and nil sets all resolve to none; the default is explicit
// here rather than relying on zero values at call sites.
func (r *Role) Grant(module, page string) PermissionLevel {
	if r == nil || r.Permissions == nil {
		return PermissionNone
	}
	grant, ok := r.Permissions[module]
	if !ok {
		return PermissionNone
	}
	if page != "" && grant.Pages != nil {
		if level, ok := grant.Pages[page]; ok {
			return level
		}
		return PermissionNone
	}
	if grant.Level != nil {
		return *grant.Level
	}
	return PermissionNone
}
