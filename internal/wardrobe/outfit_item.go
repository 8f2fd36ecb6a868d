package wardrobe

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// OutfitItem is a clothing reference produced by the generative model. ID is
// not guaranteed to be a real id; the model sometimes puts a description
// fragment there, or leaves Description as the only usable signal.
type OutfitItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Normalize trims both fields.
func (o OutfitItem) Normalize() OutfitItem {
	return OutfitItem{
		ID:          strings.TrimSpace(o.ID),
		Description: strings.TrimSpace(o.Description),
	}
}

// IsEmpty reports whether neither field carries a usable value.
func (o OutfitItem) IsEmpty() bool {
	n := o.Normalize()
	return n.ID == "" && n.Description == ""
}

// UnmarshalJSON never fails on well-formed JSON. It accepts an object whose id
// and description hold any scalar, a bare string or number (taken as the id),
// and null. Anything else decodes to the empty reference.
func (o *OutfitItem) UnmarshalJSON(data []byte) error {
	*o = OutfitItem{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil
		}
		lowered := make(map[string]json.RawMessage, len(fields))
		for key, raw := range fields {
			lowered[strings.ToLower(strings.TrimSpace(key))] = raw
		}
		o.ID = firstScalar(lowered, "id", "item_id", "itemid")
		o.Description = firstScalar(lowered, "description", "desc", "name")
	default:
		o.ID = scalarString(data)
	}

	*o = o.Normalize()
	return nil
}

func firstScalar(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		if raw, ok := fields[key]; ok {
			if s := scalarString(raw); strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// scalarString renders a JSON scalar as text. Objects, arrays and null yield "".
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case 'n', '{', '[':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
}
