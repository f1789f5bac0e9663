// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state holds the client snapshot shared by every call of a Clerk
// instance and fans changes out to listeners.
//
// The snapshot is an immutable *models.Client behind an atomic pointer.
// Writers swap the pointer and never mutate a published value, so readers
// never lock and every derived view is computed from exactly one snapshot.
package state

import "github.com/MKhiriev/go-clerk-fapi/models"

// View is one snapshot together with the entities derived from it. All four
// fields always come from the same snapshot. Treat it as read-only.
type View struct {
	Client       *models.Client
	Session      *models.Session
	User         *models.User
	Organization *models.Organization
}

func newView(c *models.Client) View {
	v := View{Client: c}
	if c == nil {
		return v
	}

	v.Session = c.ActiveSession()
	if v.Session != nil {
		v.User = v.Session.User
		v.Organization = v.Session.ActiveOrganization()
	}
	return v
}

// Loaded reports whether the view holds a snapshot at all.
func (v View) Loaded() bool {
	return v.Client != nil
}
