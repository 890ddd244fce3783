package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultOffset is applied when no offset is given.
const DefaultOffset = "+00:00"

// accepts +7, +07, +0700 and +07:00
var offsetRegex = regexp.MustCompile(`^([+-])(\d{1,2})(?::?(\d{2}))?$`)

// ParseOffset builds a fixed zone from a UTC offset such as "+0700", "+07:00",
// "-3" or "Z". An empty offset yields DefaultOffset.
func ParseOffset(offset string) (*time.Location, error) {
	if offset == "" {
		offset = DefaultOffset
	}
	if strings.EqualFold(offset, "z") {
		return fixedZone(0), nil
	}

	m := offsetRegex.FindStringSubmatch(offset)
	if m == nil {
		return nil, fmt.Errorf("%w: malformed offset %q", ErrInvalidDate, offset)
	}

	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("%w: offset %q out of range", ErrInvalidDate, offset)
	}

	seconds := (hours*60 + minutes) * 60
	if m[1] == "-" {
		seconds = -seconds
	}

	return fixedZone(seconds), nil
}

func fixedZone(seconds int) *time.Location {
	return time.FixedZone(formatOffset(seconds), seconds)
}

// formatOffset renders seconds east of UTC as +HH:MM.
func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, seconds%3600/60)
}
