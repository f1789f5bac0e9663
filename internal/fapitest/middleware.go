package fapitest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
)

const clientCookie = "__client"

// withClientAuthorization hands out a client credential to callers that do
// not present one: an Authorization response header for native clients and
// a cookie for browser-like ones.
func (s *Server) withClientAuthorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, cookieErr := r.Cookie(clientCookie)
		if r.Header.Get("Authorization") == "" && cookieErr != nil {
			s.mu.Lock()
			if s.clientToken == "" {
				s.clientToken = s.ids.GenerateWithPrefix("client_jwt")
			}
			token := s.clientToken
			s.mu.Unlock()

			w.Header().Set("Authorization", token)
			http.SetCookie(w, &http.Cookie{Name: clientCookie, Value: token, Path: "/", HttpOnly: true})
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRecording(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}

		rec := RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Pattern:       chi.RouteContext(r.Context()).RoutePattern(),
			Query:         r.URL.RawQuery,
			Form:          form,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Traceparent:   r.Header.Get("Traceparent"),
			Mobile:        r.Header.Get("x-mobile"),
			NoOrigin:      r.Header.Get("x-no-origin"),
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		s.logger.Debug().
			Str("method", rec.Method).
			Str("pattern", rec.Pattern).
			Str("request_id", rec.RequestID).
			Msg("fapitest request")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, chi.RouteContext(r.Context()).RoutePattern())

		s.mu.Lock()
		queue := s.faults[key]
		var f *fault
		if len(queue) > 0 {
			head := queue[0]
			f = &head
			s.faults[key] = queue[1:]
		}
		s.mu.Unlock()

		if f != nil && f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}
		if f != nil && f.status != 0 {
			_, _ = utils.WriteAPIError(w, f.status, "injected_failure", http.StatusText(f.status), s.ids.Generate())
			return
		}

		next.ServeHTTP(w, r)
	})
}
