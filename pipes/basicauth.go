package pipes

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vitalvas/strada/dispatch"
)

// ErrNoAuthSource is returned when BasicAuthConfig has neither
// ValidateFunc nor Credentials configured.
var ErrNoAuthSource = errors.New("pipes: basic auth needs ValidateFunc or Credentials")

// BasicAuthConfig configures the BasicAuth pipe.
type BasicAuthConfig struct {
	// Realm is the authentication realm sent in the WWW-Authenticate
	// header. Defaults to "Restricted" when empty.
	Realm string

	// ValidateFunc validates credentials dynamically. Takes priority
	// over Credentials when both are set.
	ValidateFunc func(username, password string) bool

	// Credentials is a static map of username -> password pairs.
	// Compared using SHA-256 hashed constant-time comparison to prevent
	// timing attacks, including length-based leaks.
	Credentials map[string]string
}

// BasicAuth returns a before-pipe implementing HTTP Basic Authentication
// per RFC 7617. Missing or invalid credentials short-circuit the chain
// with a Terminal 401 carrying the WWW-Authenticate challenge.
//
// It returns ErrNoAuthSource if both ValidateFunc and Credentials are
// nil/empty.
func BasicAuth(cfg BasicAuthConfig) (dispatch.Pipe, error) {
	if cfg.ValidateFunc == nil && len(cfg.Credentials) == 0 {
		return nil, ErrNoAuthSource
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}

	challenge := fmt.Sprintf("Basic realm=%q", realm)

	validate := cfg.ValidateFunc
	credentials := cfg.Credentials

	return func(c *dispatch.Ctx) dispatch.Result {
		username, password, ok := parseBasicAuth(c.Request().Header)
		if !ok {
			return dispatch.Terminal(unauthorized(challenge))
		}

		if validate != nil {
			if !validate(username, password) {
				return dispatch.Terminal(unauthorized(challenge))
			}
			return dispatch.Continue()
		}

		expected, exists := credentials[username]
		// Always perform the comparison to avoid leaking whether the
		// username exists.
		match := constantTimeEqual(password, expected)
		if !exists || !match {
			return dispatch.Terminal(unauthorized(challenge))
		}

		return dispatch.Continue()
	}, nil
}

// parseBasicAuth extracts credentials from an Authorization header value
// of the form "Basic base64(user:pass)" per RFC 7617 Section 2.
func parseBasicAuth(header http.Header) (username, password string, ok bool) {
	if header == nil {
		return "", "", false
	}

	const prefix = "Basic "
	auth := header.Get("Authorization")
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(auth[len(prefix):])
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

// constantTimeEqual compares two strings without leaking length or
// content timing by comparing their SHA-256 digests.
func constantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

func unauthorized(challenge string) dispatch.Response {
	resp := dispatch.Text(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	resp.Header.Set("WWW-Authenticate", challenge)
	return resp
}
