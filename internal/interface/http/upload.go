package handlers

import (
	"mime"
	"strings"
)

// IsImage reports whether contentType has the top-level type "image".
func IsImage(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	top, _, ok := strings.Cut(mt, "/")
	return ok && top == "image"
}
