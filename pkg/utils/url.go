package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
)

// HashURL returns the hex SHA-256 of rawURL.
// Page cache keys are built from it so arbitrary URLs stay key-safe.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// SiteRoot reduces rawURL to its scheme and host, e.g.
// "https://www.idealista.com/venta-viviendas/" -> "https://www.idealista.com".
func SiteRoot(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("url %q has no scheme or host", rawURL)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}
