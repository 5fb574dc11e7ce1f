package config

import "strings"

// RemediationHint is shown after a placeholder error.
const RemediationHint = "Please update `.env.local` and replace placeholders with the real IDs/keys from your Appwrite project."

// MissingError lists required environment variables that are unset or empty.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "Missing required environment variables: " + strings.Join(e.Keys, ", ")
}

// PlaceholderError lists environment variables that still hold template values.
type PlaceholderError struct {
	Keys []string
}

func (e *PlaceholderError) Error() string {
	return "It looks like some environment variables still contain placeholder values (e.g. <...> or your-...): " +
		strings.Join(e.Keys, ", ")
}
