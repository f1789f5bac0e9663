package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered ids for requests and fake resources.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to v4 if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateWithPrefix returns an id in the FAPI style, e.g. "sess_0190c6b2...".
func (g *UUIDGenerator) GenerateWithPrefix(prefix string) string {
	id := g.Generate()
	out := make([]byte, 0, len(prefix)+1+len(id))
	out = append(out, prefix...)
	out = append(out, '_')
	for i := 0; i < len(id); i++ {
		if id[i] != '-' {
			out = append(out, id[i])
		}
	}
	return string(out)
}
