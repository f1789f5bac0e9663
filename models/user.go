// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is the identity record referenced by one or more sessions.
type User struct {
	ID       string  `json:"id"`
	Object   string  `json:"object,omitempty"`
	Username *string `json:"username,omitempty"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`

	// PrimaryEmailAddressID points into EmailAddresses.
	PrimaryEmailAddressID *string        `json:"primary_email_address_id,omitempty"`
	EmailAddresses        []EmailAddress `json:"email_addresses,omitempty"`

	// OrganizationMemberships is the only place organizations are reachable
	// from a client snapshot.
	OrganizationMemberships []OrganizationMembership `json:"organization_memberships,omitempty"`

	PublicMetadata map[string]any `json:"public_metadata,omitempty"`
	UnsafeMetadata map[string]any `json:"unsafe_metadata,omitempty"`

	CreatedAt int64 `json:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// EmailAddress is one of the user's addresses.
type EmailAddress struct {
	ID           string        `json:"id"`
	Object       string        `json:"object,omitempty"`
	EmailAddress string        `json:"email_address"`
	Verification *Verification `json:"verification,omitempty"`
}

// PrimaryEmailAddress returns the address referenced by
// PrimaryEmailAddressID, falling back to the first address.
func (u *User) PrimaryEmailAddress() string {
	if u == nil || len(u.EmailAddresses) == 0 {
		return ""
	}
	if u.PrimaryEmailAddressID != nil {
		for _, e := range u.EmailAddresses {
			if e.ID == *u.PrimaryEmailAddressID {
				return e.EmailAddress
			}
		}
	}
	return u.EmailAddresses[0].EmailAddress
}

// OrganizationByID looks the organization up among the user's memberships.
func (u *User) OrganizationByID(id string) *Organization {
	if u == nil || id == "" {
		return nil
	}
	for i := range u.OrganizationMemberships {
		if u.OrganizationMemberships[i].Organization.ID == id {
			return &u.OrganizationMemberships[i].Organization
		}
	}
	return nil
}

// OrganizationByIDOrSlug accepts either an organization id or its slug.
// Ids win over slugs when both could match.
func (u *User) OrganizationByIDOrSlug(idOrSlug string) *Organization {
	if org := u.OrganizationByID(idOrSlug); org != nil {
		return org
	}
	if u == nil || idOrSlug == "" {
		return nil
	}
	for i := range u.OrganizationMemberships {
		if u.OrganizationMemberships[i].Organization.Slug == idOrSlug {
			return &u.OrganizationMemberships[i].Organization
		}
	}
	return nil
}
