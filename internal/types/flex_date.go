package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order; HTML date inputs send the first one
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// FlexDate is a time that accepts a bare date or a full timestamp. Values are normalized to UTC.
type FlexDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexDate: expected a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses s with the accepted layouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("FlexDate: unrecognized date %q", s)
}
