package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// Authorization header values, as sent to the remote quote source.
	authSchemeValue = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)

	// Compact JWTs logged outside of a header.
	jwtValue = regexp.MustCompile(`^eyJ[\w-]*\.eyJ[\w-]*\.[\w-]*$`)
)

// secretFields are attribute keys whose values are always masked.
var secretFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"access_token",
	"refresh_token",
	"remote_token",
	"authorization",
	"cookie",
	"credentials",
	"private_key",
}

// NewReplaceAttr returns a slog ReplaceAttr that masks secret fields and
// credential-shaped values. Extra masq options extend the defaults.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	all := make([]masq.Option, 0, len(secretFields)+len(opts)+4)
	for _, name := range secretFields {
		all = append(all, masq.WithFieldName(name))
	}

	all = append(all,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(authSchemeValue),
		masq.WithRegex(jwtValue),
	)

	return masq.New(append(all, opts...)...)
}
