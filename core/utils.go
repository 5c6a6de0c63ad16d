package core

import (
	"fmt"
	"net/url"
)

// URLParam is a query parameter appended by MakeURL.
type URLParam struct {
	Key, Val string
}

// MakeURL parses rawURL and sets the given query parameters on it,
// replacing any existing values for the same keys.
func MakeURL(rawURL string, params ...URLParam) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse %q: not an absolute URL", rawURL)
	}
	q := u.Query()
	for _, p := range params {
		q.Set(p.Key, p.Val)
	}
	u.RawQuery = q.Encode()
	return u, nil
}
