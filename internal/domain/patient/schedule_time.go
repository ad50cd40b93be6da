package patient

import "regexp"

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidTime reports whether raw is a 24-hour HH:MM time of day. Leading
// zeros are mandatory and no seconds or surrounding whitespace are allowed.
func ValidTime(raw string) bool {
	return timePattern.MatchString(raw)
}
