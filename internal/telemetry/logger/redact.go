package logger

import (
	"log/slog"
	"strings"
	"sync"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
	"bearer",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// secrets holds exact values (the configured API token) that are masked
// wherever they appear in a logged string.
var secrets struct {
	mu     sync.RWMutex
	values []string
}

// RegisterSecret masks value in every subsequent log line. Values shorter
// than four characters are ignored.
func RegisterSecret(value string) {
	if len(value) < 4 {
		return
	}
	secrets.mu.Lock()
	defer secrets.mu.Unlock()
	for _, v := range secrets.values {
		if v == value {
			return
		}
	}
	secrets.values = append(secrets.values, value)
}

// resetSecrets clears registered secrets. Used by tests.
func resetSecrets() {
	secrets.mu.Lock()
	secrets.values = nil
	secrets.mu.Unlock()
}

// redactSensitive checks if an attribute contains sensitive data
// and redacts it if necessary.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		strVal := a.Value.String()
		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if masked := RedactString(strVal); masked != strVal {
			return slog.String(a.Key, masked)
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			msg := err.Error()
			if masked := RedactString(msg); masked != msg {
				return slog.String(a.Key, masked)
			}
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}
	return a
}

// RedactString replaces every registered secret in value with a mask that
// keeps only the last four characters.
func RedactString(value string) string {
	secrets.mu.RLock()
	defer secrets.mu.RUnlock()
	for _, s := range secrets.values {
		if strings.Contains(value, s) {
			value = strings.ReplaceAll(value, s, MaskToken(s))
		}
	}
	return value
}

// MaskToken hides all but the last four characters of token.
func MaskToken(token string) string {
	if len(token) <= 4 {
		return "***"
	}
	return "***" + token[len(token)-4:]
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
