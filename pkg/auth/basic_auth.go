package auth

import (
	"encoding/base64"
)

// BasicCredentials encodes a username and password as a basic auth token.
// Use it with the "basic" scheme; the password may be empty.
func BasicCredentials(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
