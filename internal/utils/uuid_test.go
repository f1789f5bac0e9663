package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if id == g.Generate() {
		t.Error("expected two calls to produce different ids")
	}
}

func TestUUIDGenerator_GenerateWithPrefix(t *testing.T) {
	id := NewUUIDGenerator().GenerateWithPrefix("sess")

	if !strings.HasPrefix(id, "sess_") {
		t.Fatalf("expected prefix 'sess_', got %q", id)
	}
	if strings.Contains(id, "-") {
		t.Errorf("expected dashes to be stripped, got %q", id)
	}
	if len(id) != len("sess_")+32 {
		t.Errorf("unexpected length %d for %q", len(id), id)
	}
}
