package transformer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/BeritaKita/internal/domain"
)

// imageShape is the tagged result of inspecting an upstream "image" value.
type imageShape struct {
	style domain.ImageStyle

	// object variants
	small, medium, large, extraLarge string

	// string variant
	url string
}

func inspectImage(raw json.RawMessage) imageShape {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return imageShape{style: domain.UnknownStyle}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.HasPrefix(s, "http") {
			return imageShape{style: domain.VoaStyle, url: s}
		}
	case '{':
		obj, ok := decodeObject(raw)
		if !ok {
			break
		}
		shape := imageShape{
			small:      obj.str("small"),
			medium:     obj.str("medium"),
			large:      obj.str("large"),
			extraLarge: obj.str("extraLarge"),
		}
		switch {
		case shape.extraLarge != "" || shape.medium != "":
			shape.style = domain.KumparanStyle
			return shape
		case shape.small != "" || shape.large != "":
			shape.style = domain.StandardStyle
			return shape
		}
	}
	return imageShape{style: domain.UnknownStyle}
}

// resolve maps the shape to the {small, large} pair; nil for unknown shapes.
func (s imageShape) resolve() *domain.Image {
	switch s.style {
	case domain.KumparanStyle:
		return &domain.Image{
			Small: firstNonEmpty(s.small, s.medium),
			Large: firstNonEmpty(s.extraLarge, s.large, s.medium),
		}
	case domain.StandardStyle:
		return &domain.Image{
			Small: s.small,
			Large: s.large,
		}
	case domain.VoaStyle:
		return &domain.Image{Small: s.url, Large: s.url}
	default:
		return nil
	}
}
