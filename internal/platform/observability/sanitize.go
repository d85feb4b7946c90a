package observability

import (
	"strings"
	"unicode"
)

// clip removes control characters and keeps at most limit runes.
func clip(value string, limit int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	if runes := []rune(cleaned); len(runes) > limit {
		return string(runes[:limit])
	}
	return cleaned
}

// SanitizeRoute prepares a chi route pattern or path for a log field.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return clip(route, 180)
}

// SanitizeMethod prepares an HTTP method for a log field.
func SanitizeMethod(method string) string {
	return clip(method, 10)
}

// SanitizeQuery bounds the tags and search values users send before they reach the logs.
func SanitizeQuery(value string) string {
	return clip(value, 64)
}
