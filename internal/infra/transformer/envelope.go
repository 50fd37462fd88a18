package transformer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidPayload is returned when the upstream body has no "data" array.
var ErrInvalidPayload = errors.New("invalid response format")

// RawArticle is one upstream item with its fields left undecoded, since their types vary by outlet.
type RawArticle map[string]json.RawMessage

// envelope is the upstream response: {"data": [...], "total": n}.
type envelope struct {
	Data  []json.RawMessage
	Total int
}

func decodeEnvelope(reader io.Reader) (*envelope, error) {
	var top map[string]json.RawMessage
	if err := json.NewDecoder(reader).Decode(&top); err != nil {
		return nil, fmt.Errorf("failed to decode upstream response: %w", err)
	}

	data := bytes.TrimSpace(top["data"])
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrInvalidPayload
	}

	env := &envelope{}
	if err := json.Unmarshal(data, &env.Data); err != nil {
		return nil, fmt.Errorf("failed to decode data array: %w", err)
	}

	// total is advisory; ignore it when it is not a number
	var total float64
	if err := json.Unmarshal(top["total"], &total); err == nil && total > 0 {
		env.Total = int(total)
	}
	return env, nil
}

func decodeObject(raw json.RawMessage) (RawArticle, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj RawArticle
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// str returns the string value under key, or "" when it is absent or not a string.
func (r RawArticle) str(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
