package models

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout matches the millisecond precision UTC form used on the wire.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// DeadlineLayouts are accepted for user supplied deadlines, in order.
var DeadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ISOTime is a timestamp serialized as ISO-8601 in UTC.
type ISOTime struct {
	time.Time
}

func (t ISOTime) String() string {
	return t.UTC().Format(ISOLayout)
}

func (t ISOTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("ISOTime.UnmarshalJSON: %w", err)
	}

	t.Time = parsed.UTC()
	return nil
}

// ParseDeadline reads a deadline as typed into a form. Values without an offset are read in loc.
func ParseDeadline(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, InvalidDeadlineErr
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.Local
	}

	for _, layout := range DeadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", InvalidDeadlineErr, value)
}
