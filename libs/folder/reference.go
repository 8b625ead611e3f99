package folder

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMalformedLink = errors.New("could not determine folder from link")

// Reference identifies a remote folder. It is derived once from a sharing
// link and treated as opaque by everything downstream.
type Reference string

func (r Reference) String() string {
	return string(r)
}

// ParseReference extracts the folder id from a sharing link. Two link shapes
// are supported:
//
//	https://drive.google.com/open?id=<folder>
//	https://drive.google.com/drive/folders/<folder>
//
// The id query parameter wins when present, otherwise the last non-empty
// path segment is used.
func ParseReference(link string) (Reference, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("%w: empty link", ErrMalformedLink)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedLink, err)
	}

	if parsed.RawQuery != "" {
		if id := parsed.Query().Get("id"); id != "" {
			return Reference(id), nil
		}
	}

	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return Reference(segments[i]), nil
		}
	}

	return "", fmt.Errorf("%w: %q has neither an id parameter nor a path segment", ErrMalformedLink, link)
}
