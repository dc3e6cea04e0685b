package utils

import "strconv"

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ShortID returns the last n characters of an id, for human-facing references
// like "order #a1b2c3".
func ShortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[len(id)-n:]
}
