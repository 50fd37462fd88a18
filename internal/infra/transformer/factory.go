package transformer

import (
	"fmt"
	"strings"

	"github.com/BeritaKita/internal/domain"
)

// GetTransformer returns the transformer registered under name.
// An empty name selects the default berita-indo transformer.
func GetTransformer(name string) (domain.Transformer, error) {
	switch strings.ToLower(name) {
	case "", "berita-indo":
		return NewNewsTransformer(), nil
	default:
		return nil, fmt.Errorf("transformer not found: %s", name)
	}
}

// ParseImageStyle resolves a configured image style name.
func ParseImageStyle(name string) (domain.ImageStyle, error) {
	switch style := domain.ImageStyle(strings.ToLower(strings.TrimSpace(name))); style {
	case domain.KumparanStyle, domain.StandardStyle, domain.VoaStyle:
		return style, nil
	case "", domain.UnknownStyle:
		return domain.UnknownStyle, nil
	default:
		return "", fmt.Errorf("unknown image style: %s", name)
	}
}
