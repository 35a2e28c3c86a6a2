package provider

import (
	"regexp"
	"strings"
)

const (
	// MaskVisible is how many leading characters of a secret stay readable.
	MaskVisible = 4
	maskChar    = "*"

	minCredentialLen = 8
)

var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^your_.*_here$`),
	regexp.MustCompile(`(?i)^placeholder$`),
	regexp.MustCompile(`(?i)^change_me$`),
	regexp.MustCompile(`(?i)^replace_this$`),
}

// MaskSecret keeps the first MaskVisible characters of s and masks the rest.
// Secrets no longer than MaskVisible are fully masked.
func MaskSecret(s string) string {
	if len(s) <= MaskVisible {
		return strings.Repeat(maskChar, len(s))
	}
	return s[:MaskVisible] + strings.Repeat(maskChar, len(s)-MaskVisible)
}

// Redact replaces every occurrence of secret in msg with its masked form.
func Redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, MaskSecret(secret))
}

// CheckCredential validates an API key before it is ever sent anywhere.
// charset must match the whole key.
func CheckCredential(provider, key string, charset *regexp.Regexp) error {
	errs := Errors{Provider: provider, Secret: key}
	switch {
	case key == "":
		return errs.New(ErrCredentialMissing, "api key not set")
	case isPlaceholder(key):
		return errs.New(ErrCredentialMissing, "api key is a placeholder value")
	case len(key) < minCredentialLen:
		return errs.New(ErrCredentialMissing, "api key shorter than %d characters", minCredentialLen)
	case charset != nil && !charset.MatchString(key):
		return errs.New(ErrCredentialMissing, "api key %s has unexpected characters", key)
	}
	return nil
}

func isPlaceholder(key string) bool {
	for _, p := range placeholderPatterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
