package providers

import (
	"fmt"
	"strings"
	"time"
)

// LoadTimezone parses an IANA zone name used for readable start times. An
// empty name returns a nil location, meaning the feed's own offset applies.
func LoadTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid display timezone %q: %w", name, err)
	}
	return loc, nil
}

// ResolveTimezone is LoadTimezone for names validated at startup; an
// unknown name yields nil.
func ResolveTimezone(name string) *time.Location {
	loc, err := LoadTimezone(name)
	if err != nil {
		return nil
	}
	return loc
}
