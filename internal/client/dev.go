package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/internal/server"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

// Demo account seeded into every fake Frontend API started by clerkctl.
const (
	DevEmail    = "demo@example.com"
	DevPassword = "demo-password"
)

// DevServer is a fake Frontend API served over HTTP with the demo account.
type DevServer struct {
	Fake *fapitest.Server
	User models.User

	server *server.Server
}

// NewDevServer binds addr and seeds the demo account, a member of the
// "acme" and "globex" organizations. Call Start or Run to serve.
func NewDevServer(ctx context.Context, addr string, log *logger.Logger) (*DevServer, error) {
	fake, handler := fapitest.NewUnstartedHandler(log)
	user := fake.AddUser(DevEmail, DevPassword,
		models.Organization{Name: "Acme", Slug: "acme"},
		models.Organization{Name: "Globex", Slug: "globex"},
	)

	srv, err := server.New(ctx, handler, addr, log)
	if err != nil {
		return nil, fmt.Errorf("start fake frontend api: %w", err)
	}
	return &DevServer{Fake: fake, User: user, server: srv}, nil
}

// URL is the proxy URL to point the SDK at.
func (d *DevServer) URL() string {
	return d.server.URL()
}

func (d *DevServer) Start() {
	d.server.Start()
}

// Run serves until ctx is done.
func (d *DevServer) Run(ctx context.Context) error {
	return d.server.Run(ctx)
}

func (d *DevServer) Shutdown(ctx context.Context) {
	d.server.Shutdown(ctx)
}
