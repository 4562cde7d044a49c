package e2etest

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/mtoivan/samplab/internal/errors"
)

// unsafeCookieJar strips the Secure flag from stored cookies. The server
// marks its session cookie Secure, and the test server speaks plain HTTP on
// localhost, so a standards-compliant jar would silently drop the session
// between requests.
type unsafeCookieJar struct {
	*cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &unsafeCookieJar{Jar: jar}, nil
}

func (u *unsafeCookieJar) SetCookies(url *url.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	u.Jar.SetCookies(url, cookies)
}
