package models

// Organization is an optional grouping entity a session may be scoped to.
type Organization struct {
	ID             string         `json:"id"`
	Object         string         `json:"object,omitempty"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	MembersCount   int            `json:"members_count,omitempty"`
	PublicMetadata map[string]any `json:"public_metadata,omitempty"`
	CreatedAt      int64          `json:"created_at,omitempty"`
	UpdatedAt      int64          `json:"updated_at,omitempty"`
}

// OrganizationMembership links a user to an organization with a role.
type OrganizationMembership struct {
	ID           string       `json:"id"`
	Object       string       `json:"object,omitempty"`
	Role         string       `json:"role"`
	Permissions  []string     `json:"permissions,omitempty"`
	Organization Organization `json:"organization"`
	CreatedAt    int64        `json:"created_at,omitempty"`
	UpdatedAt    int64        `json:"updated_at,omitempty"`
}

// OrganizationMemberships is the paginated list returned by
// GET /v1/me/organization_memberships.
type OrganizationMemberships struct {
	Data       []OrganizationMembership `json:"data"`
	TotalCount int                      `json:"total_count"`
}
