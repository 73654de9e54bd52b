package utils

import (
	"fmt"
	"time"
)

// ParseDurationString parses config values like "15m" or "1h" into a
// time.Duration.
func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid time duration '%s' : %s", value, err.Error())
	}
	return d, nil
}
