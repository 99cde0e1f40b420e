package cookie

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"market-client/internal/pkg/config"
)

// NewSessionJar returns a jar that sends the configured session cookie to the backend
// and keeps whatever cookies the backend sets afterwards.
func NewSessionJar(base *url.URL, cfg config.AuthConfig) (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if cfg.SessionCookie == "" {
		return jar, nil
	}

	jar.SetCookies(base, []*http.Cookie{
		{
			Name:     cfg.CookieName,
			Value:    cfg.SessionCookie,
			Path:     "/",
			HttpOnly: true,
			Secure:   base.Scheme == "https",
		},
	})
	return jar, nil
}
