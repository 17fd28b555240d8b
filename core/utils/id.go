package utils

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	lowerAlnum   = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func GenerateID() string {
	id, err := gonanoid.Generate(alphanumeric, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(alphanumeric, length)
		return id
	}
	return base64.RawURLEncoding.EncodeToString(bytes)[:length]
}

// MakeSlug turns a display name into a URL slug. fallback is used when the
// name has no sluggable characters.
func MakeSlug(name, fallback string) string {
	s := slug.Make(name)
	if s == "" {
		s = slug.Make(fallback)
	}
	if s == "" {
		s = "host"
	}
	return s
}

// SlugWithSuffix appends a short random suffix to base.
func SlugWithSuffix(base string) string {
	suffix, err := gonanoid.Generate(lowerAlnum, 6)
	if err != nil {
		suffix = strings.ToLower(GenerateID())
	}
	return base + "-" + suffix
}
