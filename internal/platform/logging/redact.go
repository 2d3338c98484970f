package logging

import (
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

const redacted = "[REDACTED]"

// credentialHeaders are the lowercase header names whose values are never
// logged.
var credentialHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// Attribute keys masked wherever they appear. The deposition API token and
// the contact address returned by the user directory are the ones this
// service actually handles.
var (
	redactedKeys     = []string{"password", "secret", "token", "api_token", "email"}
	redactedPrefixes = []string{"secret_", "api_key"}
)

// redactedValues catch secrets inside free-form values such as error text.
// JWT segments need ten characters each so version strings pass.
var redactedValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
}

// redactAttr is the ReplaceAttr every handler built by New uses.
func redactAttr() func([]string, slog.Attr) slog.Attr {
	var opts []masq.Option
	for name := range credentialHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, key := range redactedKeys {
		opts = append(opts, masq.WithFieldName(key))
	}
	for _, prefix := range redactedPrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range redactedValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}

// RedactHeaders turns headers into attributes sorted by name, masking
// credential headers. Repeated values are joined with commas.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		value := strings.Join(headers[name], ",")
		if credentialHeaders[strings.ToLower(name)] {
			value = redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
