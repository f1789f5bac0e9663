// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Environment describes the tenant instance: which authentication strategies
// are enabled, display settings and organization settings. It is fetched once
// and cached independently of the client snapshot.
type Environment struct {
	Object string `json:"object,omitempty"`

	AuthConfig           AuthConfig           `json:"auth_config"`
	DisplayConfig        DisplayConfig        `json:"display_config"`
	OrganizationSettings OrganizationSettings `json:"organization_settings"`

	// UserSettings is kept verbatim; its shape changes often upstream.
	UserSettings json.RawMessage `json:"user_settings,omitempty"`

	MaintenanceMode bool `json:"maintenance_mode,omitempty"`
}

// AuthConfig holds instance wide authentication settings.
type AuthConfig struct {
	ID                   string `json:"id,omitempty"`
	SingleSessionMode    bool   `json:"single_session_mode"`
	URLBasedSessionSync  bool   `json:"url_based_session_syncing,omitempty"`
	ClaimedAt            *int64 `json:"claimed_at,omitempty"`
	ReverificationEnable bool   `json:"reverification,omitempty"`
}

// DisplayConfig holds branding and redirect settings.
type DisplayConfig struct {
	ID                  string `json:"id,omitempty"`
	ApplicationName     string `json:"application_name"`
	InstanceEnvironment string `json:"instance_environment_type,omitempty"`
	HomeURL             string `json:"home_url,omitempty"`
	SignInURL           string `json:"sign_in_url,omitempty"`
	SignUpURL           string `json:"sign_up_url,omitempty"`
	AfterSignOutURL     string `json:"after_sign_out_all_url,omitempty"`
}

// OrganizationSettings tells whether organizations are enabled at all.
type OrganizationSettings struct {
	Enabled               bool `json:"enabled"`
	MaxAllowedMemberships int  `json:"max_allowed_memberships,omitempty"`
}
