package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeFormats are tried in order for absolute time specs.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// longUnits extends time.ParseDuration with days and weeks.
var longUnits = map[byte]time.Duration{
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

func parseDuration(spec string) (time.Duration, error) {
	if spec != "" {
		if unit, ok := longUnits[spec[len(spec)-1]]; ok {
			n, err := strconv.Atoi(spec[:len(spec)-1])
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid duration %q", spec)
			}
			return time.Duration(n) * unit, nil
		}
	}
	return time.ParseDuration(spec)
}

// parseTimeSpec reads a relative duration back from now ("1h30m", "2d",
// "1w") or an absolute timestamp, interpreted in the local zone when it
// carries none.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	spec = strings.TrimSpace(spec)
	if d, err := parseDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, now.Location()); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use relative duration (e.g., '1h', '2d') or absolute format (e.g., '2023-10-27T15:04:05Z')", spec)
}
