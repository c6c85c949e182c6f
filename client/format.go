package client

import "strings"

// ShortenEmail truncates the local part to keep long addresses readable,
// e.g. "somebody@x.com" -> "someb...@x.com". A non-positive length falls
// back to 5.
func ShortenEmail(email string, usernameLength int) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	if usernameLength <= 0 {
		usernameLength = 5
	}
	username, domain := email[:at], email[at+1:]
	if len(username) > usernameLength {
		username = username[:usernameLength] + "..."
	}
	return username + "@" + domain
}
