// Package rfctime serializes timestamps of API payloads.
package rfctime

import (
	"encoding/json"
	"time"
)

// Layout of timestamps in responses: UTC with milliseconds, like "2025-03-01T12:00:00.000Z".
const Layout = "2006-01-02T15:04:05.000Z07:00"

// RFC3339 is a timestamp in API payloads.
//
// It is written in Layout, and read from any RFC 3339 date-time.
type RFC3339 time.Time

func (t RFC3339) Time() time.Time {
	return time.Time(t)
}

func (t *RFC3339) Equal(o *RFC3339) bool {
	if t == nil || o == nil {
		return t == nil && o == nil
	}
	return t.Time().Equal(o.Time())
}

func (t RFC3339) String() string {
	return t.Time().UTC().Format(Layout)
}

func Parse(s string) (RFC3339, error) {
	v, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return RFC3339{}, err
	}
	return RFC3339(v), nil
}

func (t RFC3339) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON reads a date-time string. null leaves t untouched.
func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s := ""
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
