package domain

import (
	"fmt"
	"strings"
)

// ImageStyle names the shape an outlet uses for its "image" field.
type ImageStyle string

const (
	// KumparanStyle is an object with small/medium/large/extraLarge resolutions.
	KumparanStyle ImageStyle = "kumparan"
	// StandardStyle is an object with small and/or large URLs (CNN, CNBC, Republika).
	StandardStyle ImageStyle = "standard"
	// VoaStyle is a bare URL string.
	VoaStyle ImageStyle = "voa"
	// UnknownStyle is anything else; such items get no image.
	UnknownStyle ImageStyle = "unknown"
)

// Source is one upstream news outlet.
type Source struct {
	ID         string
	Name       string
	Endpoint   string
	ImageStyle ImageStyle
}

// Registry is the immutable table of known sources, built once at start.
type Registry struct {
	sources []Source
	byID    map[string]Source
}

// NewRegistry validates the given sources and builds a registry preserving their order.
func NewRegistry(sources []Source) (*Registry, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("registry: no sources")
	}

	r := &Registry{
		sources: make([]Source, 0, len(sources)),
		byID:    make(map[string]Source, len(sources)),
	}
	for i, s := range sources {
		s.ID = strings.TrimSpace(s.ID)
		switch {
		case s.ID == "":
			return nil, fmt.Errorf("registry: source #%d has empty id", i)
		case s.Name == "":
			return nil, fmt.Errorf("registry: source %q has empty name", s.ID)
		case s.Endpoint == "":
			return nil, fmt.Errorf("registry: source %q has empty endpoint", s.ID)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate source id %q", s.ID)
		}
		if s.ImageStyle == "" {
			s.ImageStyle = UnknownStyle
		}
		r.sources = append(r.sources, s)
		r.byID[s.ID] = s
	}
	return r, nil
}

// Lookup returns the source registered under id.
func (r *Registry) Lookup(id string) (Source, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// All returns the registered sources in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int { return len(r.sources) }
