package domain

import "time"

// Display-formatting fallbacks used when an organization has no settings row.
const (
	DefaultTimezone = "Asia/Qatar"
	DefaultCurrency = "QAR"
)

// Organization is a tenant.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationSettings holds per-tenant display configuration.
type OrganizationSettings struct {
	ID             string
	OrganizationID string
	Timezone       string
	Currency       string
	UpdatedAt      time.Time
}

// Location resolves the configured timezone, falling back to the default
// when the zone is missing or unknown.
func (s *OrganizationSettings) Location() *time.Location {
	name := DefaultTimezone
	if s != nil && s.Timezone != "" {
		name = s.Timezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	if loc == nil {
		loc = time.UTC
	}
	return loc
}
