package storage

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CookieMaxAge is how long written cookies live.
const CookieMaxAge = 365 * 24 * time.Hour

// Cookie is a medium backed by the cookies of one HTTP exchange. Values are read
// from the request Cookie header; writes are recorded as Set-Cookie values for
// the response.
type Cookie struct {
	mu      sync.Mutex
	values  map[string]string
	pending []*http.Cookie
	now     func() time.Time
}

// NewCookie returns a Cookie medium reading from a request Cookie header.
func NewCookie(header string) *Cookie {
	return &Cookie{values: ParseCookies(header), now: time.Now}
}

// ParseCookies decodes a Cookie header into a name to value map. Values are
// URL-decoded; undecodable values are kept as sent.
func ParseCookies(header string) map[string]string {
	values := make(map[string]string)
	for _, part := range strings.Split(header, ";") {
		name, value, _ := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		values[name] = value
	}
	return values
}

func (c *Cookie) GetItem(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (c *Cookie) SetItem(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value
	c.pending = append(c.pending, &http.Cookie{
		Name:     key,
		Value:    url.PathEscape(value),
		Path:     "/",
		Expires:  c.now().Add(CookieMaxAge).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// EncodedSize returns the length of the name=value pair the browser stores.
func (c *Cookie) EncodedSize(key, value string) int {
	return len(key) + 1 + len(url.PathEscape(value))
}

func (c *Cookie) RemoveItem(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, key)
	c.pending = append(c.pending, &http.Cookie{
		Name:     key,
		Path:     "/",
		Expires:  time.Unix(1, 0).UTC(),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Flush returns the cookies written since the last call, in write order.
func (c *Cookie) Flush() []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.pending
	c.pending = nil
	return out
}

// SetCookieHeaders returns Flush rendered as Set-Cookie header values.
func (c *Cookie) SetCookieHeaders() []string {
	cookies := c.Flush()
	headers := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		headers = append(headers, ck.String())
	}
	return headers
}
