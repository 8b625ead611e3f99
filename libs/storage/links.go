package storage

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// objectLink appends container and the slash separated object name to base
// without path cleaning, so dot segments in a name stay part of the name.
func objectLink(base, container, name string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	segments := append([]string{container}, strings.Split(name, "/")...)
	escaped := lo.Map(segments, func(s string, _ int) string {
		if s == "." || s == ".." {
			return strings.ReplaceAll(s, ".", "%2E")
		}
		return url.PathEscape(s)
	})

	u.RawPath = strings.TrimSuffix(u.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.Join(segments, "/")
	return u.String(), nil
}
