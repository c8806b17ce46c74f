package models

import (
	"encoding/json"
	"time"
)

// timestampLayouts covers RFC3339 with and without fractional seconds,
// plus the zone-less form the server emits for inserted_at/updated_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Timestamp is a time.Time that decodes leniently. A missing, null, or
// unparseable timestamp decodes to the zero value instead of failing the
// enclosing record.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a JSON string (null, number, object). Leave zero.
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
