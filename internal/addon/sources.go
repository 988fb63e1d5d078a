package addon

import (
	"fmt"
	"net/url"
)

// SourceResolver turns a stored relative locator into a playable URL.
type SourceResolver interface {
	Resolve(locator string) (string, error)
}

// SourceResolverFunc adapts a function to SourceResolver.
type SourceResolverFunc func(locator string) (string, error)

// Resolve implements SourceResolver.
func (f SourceResolverFunc) Resolve(locator string) (string, error) {
	return f(locator)
}

// URLSourceResolver joins locators onto a base stream address.
type URLSourceResolver struct {
	base string
}

// NewURLSourceResolver returns a resolver rooted at base, which must be an
// absolute http or https URL.
func NewURLSourceResolver(base string) (*URLSourceResolver, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base stream address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("base stream address %q must be an absolute http(s) URL", base)
	}
	return &URLSourceResolver{base: base}, nil
}

// Resolve implements SourceResolver. The result is escaped as needed.
func (r *URLSourceResolver) Resolve(locator string) (string, error) {
	out, err := url.JoinPath(r.base, locator)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", locator, err)
	}
	return out, nil
}
