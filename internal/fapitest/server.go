// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fapitest runs an in-memory Frontend API for tests and for the
// clerkctl --dev mode. It models a single client with its sessions, users and
// organizations, mints HS256 session tokens and lets tests inject failures
// per route.
package fapitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

// PublishableKey is a syntactically valid development key for
// clerk.example.com. Point the SDK at the fake with a proxy URL.
const PublishableKey = "pk_test_Y2xlcmsuZXhhbXBsZS5jb20k"

// DevCode is accepted by every email_code attempt.
const DevCode = "424242"

const (
	defaultTokenTTL = time.Minute
	signingKey      = "fapitest-signing-key"
)

// RecordedRequest is what the fake saw of one request.
type RecordedRequest struct {
	Method        string
	Path          string
	Pattern       string
	Query         string
	Form          map[string]string
	Authorization string
	RequestID     string
	Traceparent   string
	Mobile        string
	NoOrigin      string
}

type fakeUser struct {
	user     models.User
	password string
}

type fault struct {
	status int
	delay  time.Duration
}

// Server is the fake. All exported methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	env         models.Environment
	clientID    string
	createdAt   int64
	sessions    []models.Session
	lastActive  *string
	signIn      *models.SignIn
	users       map[string]*fakeUser
	tickets     map[string]string
	faults      map[string][]fault
	requests    []RecordedRequest
	clientToken string
	deleted     bool

	tokenTTL         time.Duration
	snapshotTokenTTL time.Duration

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewServer starts the fake on a loopback address. Close it when done.
func NewServer() *Server {
	s := newState(logger.Nop())
	s.Server = httptest.NewServer(s.Init())
	return s
}

// NewUnstartedHandler returns a fake that is not bound to a listener, for
// callers serving it themselves.
func NewUnstartedHandler(log *logger.Logger) (*Server, http.Handler) {
	s := newState(log)
	return s, s.Init()
}

func newState(log *logger.Logger) *Server {
	ids := utils.NewUUIDGenerator()
	return &Server{
		env:              defaultEnvironment(),
		clientID:         ids.GenerateWithPrefix("client"),
		createdAt:        time.Now().UnixMilli(),
		users:            make(map[string]*fakeUser),
		tickets:          make(map[string]string),
		faults:           make(map[string][]fault),
		tokenTTL:         defaultTokenTTL,
		snapshotTokenTTL: defaultTokenTTL,
		ids:              ids,
		logger:           log,
	}
}

func defaultEnvironment() models.Environment {
	return models.Environment{
		Object:     "environment",
		AuthConfig: models.AuthConfig{ID: "aac_fapitest"},
		DisplayConfig: models.DisplayConfig{
			ID:                  "display_config_fapitest",
			ApplicationName:     "fapitest",
			InstanceEnvironment: "development",
		},
		OrganizationSettings: models.OrganizationSettings{Enabled: true},
	}
}

// AddUser registers a user that can sign in with email and password.
// Every organization passed becomes a membership with role "org:member".
func (s *Server) AddUser(email, password string, orgs ...models.Organization) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, orgs...)
}

func (s *Server) addUserLocked(email, password string, orgs ...models.Organization) models.User {
	now := time.Now().UnixMilli()
	emailID := s.ids.GenerateWithPrefix("idn")
	u := models.User{
		ID:                    s.ids.GenerateWithPrefix("user"),
		Object:                "user",
		PrimaryEmailAddressID: &emailID,
		EmailAddresses: []models.EmailAddress{{
			ID:           emailID,
			Object:       "email_address",
			EmailAddress: email,
			Verification: &models.Verification{Status: "verified", Strategy: models.StrategyEmailCode},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, org := range orgs {
		if org.ID == "" {
			org.ID = s.ids.GenerateWithPrefix("org")
		}
		org.Object = "organization"
		u.OrganizationMemberships = append(u.OrganizationMemberships, models.OrganizationMembership{
			ID:           s.ids.GenerateWithPrefix("orgmem"),
			Object:       "organization_membership",
			Role:         "org:member",
			Organization: org,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	s.users[u.ID] = &fakeUser{user: u, password: password}
	return u
}

// StartSession signs userID in directly and makes the new session the
// active one. It returns the session id.
func (s *Server) StartSession(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startSessionLocked(userID)
}

// IssueTicket returns a sign-in ticket for userID.
func (s *Server) IssueTicket(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := s.ids.GenerateWithPrefix("ticket")
	s.tickets[ticket] = userID
	return ticket
}

// Snapshot renders the client exactly as the next response would.
func (s *Server) Snapshot() models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.renderClientLocked()
}

// FailNext makes the next request matching method and chi route pattern
// (e.g. "/v1/client/sessions/{session_id}/tokens") answer with status.
// Calls queue up.
func (s *Server) FailNext(method, pattern string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, pattern)
	s.faults[key] = append(s.faults[key], fault{status: status})
}

// DelayNext delays the next matching request by d before handling it.
func (s *Server) DelayNext(method, pattern string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, pattern)
	s.faults[key] = append(s.faults[key], fault{delay: d})
}

// FailNextAfter answers the next matching request with status after d.
func (s *Server) FailNextAfter(method, pattern string, status int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, pattern)
	s.faults[key] = append(s.faults[key], fault{status: status, delay: d})
}

// SetSnapshotTokenTTL sets the lifetime of the last_active_token embedded in
// client responses. A negative value embeds already expired tokens.
func (s *Server) SetSnapshotTokenTTL(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshotTokenTTL = d
}

// Requests returns every request seen so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and route pattern.
func (s *Server) Count(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Pattern == pattern {
			n++
		}
	}
	return n
}

// ResetRequests forgets recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func routeKey(method, pattern string) string {
	return strings.ToUpper(method) + " " + pattern
}

func (s *Server) startSessionLocked(userID string) string {
	now := time.Now()
	id := s.ids.GenerateWithPrefix("sess")

	// FAPI keeps one active session per user on a client
	for i := range s.sessions {
		if s.sessions[i].User != nil && s.sessions[i].User.ID == userID && s.sessions[i].Status == models.SessionStatusActive {
			s.sessions[i].Status = models.SessionStatusReplaced
		}
	}

	s.sessions = append(s.sessions, models.Session{
		ID:           id,
		Object:       "session",
		Status:       models.SessionStatusActive,
		User:         &models.User{ID: userID},
		ExpireAt:     now.Add(7 * 24 * time.Hour).UnixMilli(),
		AbandonAt:    now.Add(30 * 24 * time.Hour).UnixMilli(),
		LastActiveAt: now.UnixMilli(),
		CreatedAt:    now.UnixMilli(),
		UpdatedAt:    now.UnixMilli(),
	})
	s.lastActive = &id
	s.signIn = nil
	return id
}

// renderClientLocked builds a fresh client value that shares no memory with
// the fake's state.
func (s *Server) renderClientLocked() *models.Client {
	c := &models.Client{
		ID:        s.clientID,
		Object:    "client",
		Sessions:  make([]models.Session, 0, len(s.sessions)),
		CreatedAt: s.createdAt,
		UpdatedAt: time.Now().UnixMilli(),
	}
	if s.lastActive != nil {
		id := *s.lastActive
		c.LastActiveSessionID = &id
	}
	if s.signIn != nil {
		si := *s.signIn
		c.SignIn = &si
	}

	for _, sess := range s.sessions {
		c.Sessions = append(c.Sessions, s.renderSessionLocked(sess))
	}
	return c
}

func (s *Server) renderSessionLocked(sess models.Session) models.Session {
	out := sess
	if sess.LastActiveOrganizationID != nil {
		org := *sess.LastActiveOrganizationID
		out.LastActiveOrganizationID = &org
	}
	if sess.User != nil {
		if fu, ok := s.users[sess.User.ID]; ok {
			u := cloneUser(fu.user)
			out.User = &u
		}
	}
	out.LastActiveToken = nil
	if sess.Status == models.SessionStatusActive && out.User != nil {
		orgID := ""
		if out.LastActiveOrganizationID != nil {
			orgID = *out.LastActiveOrganizationID
		}
		if jwt, err := utils.GenerateSessionToken(s.issuer(), out.User.ID, sess.ID, orgID, s.snapshotTokenTTL, signingKey); err == nil {
			out.LastActiveToken = &models.Token{Object: "token", JWT: jwt}
		}
	}
	return out
}

func (s *Server) sessionLocked(id string) *models.Session {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return &s.sessions[i]
		}
	}
	return nil
}

func (s *Server) userByEmailLocked(email string) *fakeUser {
	for _, fu := range s.users {
		for _, e := range fu.user.EmailAddresses {
			if strings.EqualFold(e.EmailAddress, email) {
				return fu
			}
		}
	}
	return nil
}

// activeSessionLocked mirrors models.Client.ActiveSession on the raw state.
func (s *Server) activeSessionLocked() *models.Session {
	if s.lastActive == nil {
		return nil
	}
	sess := s.sessionLocked(*s.lastActive)
	if sess == nil || sess.Status != models.SessionStatusActive {
		return nil
	}
	return sess
}

// retireSessionLocked moves a session out of the active state and picks the
// next active session, if any, as the last active one.
func (s *Server) retireSessionLocked(sess *models.Session, status string) {
	sess.Status = status
	sess.UpdatedAt = time.Now().UnixMilli()
	if s.lastActive == nil || *s.lastActive != sess.ID {
		return
	}
	s.lastActive = nil
	for i := len(s.sessions) - 1; i >= 0; i-- {
		if s.sessions[i].Status == models.SessionStatusActive {
			id := s.sessions[i].ID
			s.lastActive = &id
			return
		}
	}
}

func (s *Server) issuer() string {
	if s.Server != nil {
		return s.URL
	}
	return "https://clerk.example.com"
}

func cloneUser(u models.User) models.User {
	out := u
	out.EmailAddresses = append([]models.EmailAddress(nil), u.EmailAddresses...)
	out.OrganizationMemberships = append([]models.OrganizationMembership(nil), u.OrganizationMemberships...)
	return out
}
