// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapitest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

func (s *Server) writeWrapped(w http.ResponseWriter, response any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeWrappedLocked(w, response)
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	_, _ = utils.WriteAPIError(w, status, code, message, s.ids.Generate())
}

// ── environment & client ────────────────────────────────────────────────────

func (s *Server) getEnvironment(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	env := s.env
	s.mu.Unlock()
	_, _ = utils.WriteJSON(w, env, http.StatusOK)
}

func (s *Server) getClient(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	var body models.ClientWrapped[*models.Client]
	if !s.deleted {
		body.Response = s.renderClientLocked()
	}
	s.mu.Unlock()
	_, _ = utils.WriteJSON(w, body, http.StatusOK)
}

func (s *Server) createClient(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.resetClientLocked()
	body := models.ClientWrapped[*models.Client]{Response: s.renderClientLocked()}
	s.mu.Unlock()
	_, _ = utils.WriteJSON(w, body, http.StatusOK)
}

func (s *Server) deleteClient(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	for i := range s.sessions {
		if s.sessions[i].Status == models.SessionStatusActive {
			s.sessions[i].Status = models.SessionStatusEnded
		}
	}
	deleted := s.renderClientLocked()
	s.resetClientLocked()
	s.deleted = true
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.ClientWrapped[*models.Client]{Response: deleted}, http.StatusOK)
}

func (s *Server) resetClientLocked() {
	s.clientID = s.ids.GenerateWithPrefix("client")
	s.createdAt = time.Now().UnixMilli()
	s.sessions = nil
	s.lastActive = nil
	s.signIn = nil
	s.deleted = false
}

// ── sessions ────────────────────────────────────────────────────────────────

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess := s.sessionLocked(chi.URLParam(r, "session_id"))
	var out models.Session
	if sess != nil {
		out = s.renderSessionLocked(*sess)
	}
	s.mu.Unlock()

	if sess == nil {
		s.writeError(w, http.StatusNotFound, "resource_not_found", "session not found")
		return
	}
	s.writeWrapped(w, out)
}

func (s *Server) touchSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess := s.sessionLocked(chi.URLParam(r, "session_id"))
	if sess == nil {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, "resource_not_found", "session not found")
		return
	}
	if sess.Status != models.SessionStatusActive {
		s.mu.Unlock()
		s.writeError(w, http.StatusUnprocessableEntity, "session_not_active", "session is not active")
		return
	}

	if _, ok := r.PostForm["active_organization_id"]; ok {
		orgID := r.PostForm.Get("active_organization_id")
		if orgID == "" {
			sess.LastActiveOrganizationID = nil
		} else {
			fu := s.users[sess.User.ID]
			if fu == nil || fu.user.OrganizationByID(orgID) == nil {
				s.mu.Unlock()
				s.writeError(w, http.StatusNotFound, "resource_not_found", "organization not found")
				return
			}
			sess.LastActiveOrganizationID = &orgID
		}
	}

	sess.LastActiveAt = time.Now().UnixMilli()
	id := sess.ID
	s.lastActive = &id
	out := s.renderSessionLocked(*sess)
	s.mu.Unlock()

	s.writeWrapped(w, out)
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	s.retireSession(w, r, models.SessionStatusEnded)
}

func (s *Server) removeSession(w http.ResponseWriter, r *http.Request) {
	s.retireSession(w, r, models.SessionStatusRemoved)
}

func (s *Server) retireSession(w http.ResponseWriter, r *http.Request, status string) {
	s.mu.Lock()
	sess := s.sessionLocked(chi.URLParam(r, "session_id"))
	if sess == nil {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, "resource_not_found", "session not found")
		return
	}
	s.retireSessionLocked(sess, status)
	out := s.renderSessionLocked(*sess)
	s.mu.Unlock()

	s.writeWrapped(w, out)
}

func (s *Server) removeClientSessions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	for i := range s.sessions {
		if s.sessions[i].Status == models.SessionStatusActive {
			s.sessions[i].Status = models.SessionStatusRemoved
		}
	}
	s.lastActive = nil
	c := s.renderClientLocked()
	s.mu.Unlock()

	s.writeWrapped(w, c)
}

func (s *Server) createSessionToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(chi.URLParam(r, "session_id"))
	if sess == nil {
		s.writeError(w, http.StatusNotFound, "resource_not_found", "session not found")
		return
	}
	if sess.Status != models.SessionStatusActive {
		s.writeError(w, http.StatusUnauthorized, "signed_out", "session is not active")
		return
	}

	orgID := ""
	if sess.LastActiveOrganizationID != nil {
		orgID = *sess.LastActiveOrganizationID
	}
	if _, ok := r.PostForm["organization_id"]; ok {
		orgID = r.PostForm.Get("organization_id")
		if orgID != "" {
			if fu := s.users[sess.User.ID]; fu == nil || fu.user.OrganizationByID(orgID) == nil {
				s.writeError(w, http.StatusNotFound, "resource_not_found", "organization not found")
				return
			}
		}
	}

	issuer := s.issuer()
	if template := chi.URLParam(r, "template"); template != "" {
		issuer += "/templates/" + template
	}
	jwt, err := utils.GenerateSessionToken(issuer, sess.User.ID, sess.ID, orgID, s.tokenTTL, signingKey)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal_clerk_error", err.Error())
		return
	}

	_, _ = utils.WriteJSON(w, models.Token{Object: "token", JWT: jwt}, http.StatusOK)
}

// ── sign in / sign up ───────────────────────────────────────────────────────

func (s *Server) createSignIn(w http.ResponseWriter, r *http.Request) {
	strategy := r.PostForm.Get("strategy")
	identifier := r.PostForm.Get("identifier")

	s.mu.Lock()
	defer s.mu.Unlock()

	if strategy == models.StrategyTicket {
		userID, ok := s.tickets[r.PostForm.Get("ticket")]
		if !ok {
			s.writeError(w, http.StatusUnprocessableEntity, "ticket_invalid", "ticket is invalid")
			return
		}
		delete(s.tickets, r.PostForm.Get("ticket"))
		s.completeSignInLocked(w, userID, identifier)
		return
	}

	fu := s.userByEmailLocked(identifier)
	if fu == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "form_identifier_not_found", "couldn't find your account")
		return
	}

	if strategy == models.StrategyPassword {
		if r.PostForm.Get("password") != fu.password || fu.password == "" {
			s.writeError(w, http.StatusUnprocessableEntity, "form_password_incorrect", "password is incorrect")
			return
		}
		s.completeSignInLocked(w, fu.user.ID, identifier)
		return
	}

	email := fu.user.EmailAddresses[0]
	s.signIn = &models.SignIn{
		ID:         s.ids.GenerateWithPrefix("sia"),
		Object:     "sign_in_attempt",
		Status:     models.SignInStatusNeedsFirstFactor,
		Identifier: &identifier,
		SupportedFirstFactors: []models.Factor{
			{Strategy: models.StrategyEmailCode, SafeIdentifier: email.EmailAddress, EmailAddressID: email.ID},
			{Strategy: models.StrategyPassword},
		},
	}
	s.writeWrappedLocked(w, *s.signIn)
}

func (s *Server) prepareFirstFactor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signIn == nil || s.signIn.ID != chi.URLParam(r, "sign_in_id") {
		s.writeError(w, http.StatusNotFound, "resource_not_found", "sign in not found")
		return
	}

	expireAt := time.Now().Add(10 * time.Minute).UnixMilli()
	s.signIn.FirstFactorVerification = &models.Verification{
		Status:   "unverified",
		Strategy: r.PostForm.Get("strategy"),
		ExpireAt: &expireAt,
	}
	s.writeWrappedLocked(w, *s.signIn)
}

func (s *Server) attemptFirstFactor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signIn == nil || s.signIn.ID != chi.URLParam(r, "sign_in_id") {
		s.writeError(w, http.StatusNotFound, "resource_not_found", "sign in not found")
		return
	}
	fu := s.userByEmailLocked(*s.signIn.Identifier)
	if fu == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "form_identifier_not_found", "couldn't find your account")
		return
	}

	switch r.PostForm.Get("strategy") {
	case models.StrategyEmailCode:
		if r.PostForm.Get("code") != DevCode {
			s.writeError(w, http.StatusUnprocessableEntity, "form_code_incorrect", "incorrect code")
			return
		}
	case models.StrategyPassword:
		if fu.password == "" || r.PostForm.Get("password") != fu.password {
			s.writeError(w, http.StatusUnprocessableEntity, "form_password_incorrect", "password is incorrect")
			return
		}
	default:
		s.writeError(w, http.StatusUnprocessableEntity, "strategy_for_user_invalid", "unsupported strategy")
		return
	}

	s.completeSignInLocked(w, fu.user.ID, *s.signIn.Identifier)
}

func (s *Server) completeSignInLocked(w http.ResponseWriter, userID, identifier string) {
	if _, ok := s.users[userID]; !ok {
		s.writeError(w, http.StatusUnprocessableEntity, "form_identifier_not_found", "couldn't find your account")
		return
	}

	var id string
	if s.signIn != nil {
		id = s.signIn.ID
	} else {
		id = s.ids.GenerateWithPrefix("sia")
	}
	sessionID := s.startSessionLocked(userID)

	out := models.SignIn{
		ID:               id,
		Object:           "sign_in_attempt",
		Status:           models.SignInStatusComplete,
		CreatedSessionID: &sessionID,
	}
	if identifier != "" {
		out.Identifier = &identifier
	}
	s.writeWrappedLocked(w, out)
}

func (s *Server) createSignUp(w http.ResponseWriter, r *http.Request) {
	email := r.PostForm.Get("email_address")

	s.mu.Lock()
	defer s.mu.Unlock()

	if email == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "form_param_missing", "email_address is required")
		return
	}
	if s.userByEmailLocked(email) != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "form_identifier_exists", "that email address is taken")
		return
	}

	u := s.addUserLocked(email, r.PostForm.Get("password"))
	fu := s.users[u.ID]
	if v := r.PostForm.Get("first_name"); v != "" {
		fu.user.FirstName = &v
	}
	if v := r.PostForm.Get("last_name"); v != "" {
		fu.user.LastName = &v
	}
	if v := r.PostForm.Get("username"); v != "" {
		fu.user.Username = &v
	}
	sessionID := s.startSessionLocked(u.ID)

	s.writeWrappedLocked(w, models.SignUp{
		ID:               s.ids.GenerateWithPrefix("sua"),
		Object:           "sign_up_attempt",
		Status:           models.SignUpStatusComplete,
		EmailAddress:     &email,
		CreatedSessionID: &sessionID,
		CreatedUserID:    &u.ID,
	})
}

// ── me ──────────────────────────────────────────────────────────────────────

func (s *Server) getMe(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fu := s.activeUserLocked()
	if fu == nil {
		s.writeError(w, http.StatusUnauthorized, "signed_out", "you are signed out")
		return
	}
	s.writeWrappedLocked(w, cloneUser(fu.user))
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fu := s.activeUserLocked()
	if fu == nil {
		s.writeError(w, http.StatusUnauthorized, "signed_out", "you are signed out")
		return
	}
	for field, target := range map[string]**string{
		"first_name": &fu.user.FirstName,
		"last_name":  &fu.user.LastName,
		"username":   &fu.user.Username,
	} {
		if _, ok := r.PostForm[field]; ok {
			v := r.PostForm.Get(field)
			*target = &v
		}
	}
	fu.user.UpdatedAt = time.Now().UnixMilli()

	s.writeWrappedLocked(w, cloneUser(fu.user))
}

func (s *Server) getOrganizationMemberships(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fu := s.activeUserLocked()
	if fu == nil {
		s.writeError(w, http.StatusUnauthorized, "signed_out", "you are signed out")
		return
	}

	all := fu.user.OrganizationMemberships
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 || offset > len(all) {
		offset = len(all)
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	s.writeWrappedLocked(w, models.OrganizationMemberships{
		Data:       append([]models.OrganizationMembership{}, all[offset:end]...),
		TotalCount: len(all),
	})
}

func (s *Server) activeUserLocked() *fakeUser {
	sess := s.activeSessionLocked()
	if sess == nil || sess.User == nil {
		return nil
	}
	return s.users[sess.User.ID]
}

func (s *Server) writeWrappedLocked(w http.ResponseWriter, response any) {
	body := models.ClientWrapped[any]{Response: response, Client: s.renderClientLocked()}
	_, _ = utils.WriteJSON(w, body, http.StatusOK)
}
