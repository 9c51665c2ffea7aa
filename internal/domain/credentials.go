package domain

import (
	"fmt"
	"strings"
)

// Credentials is the identity a run is performed with.
// It is read-only once a run starts and is shared by every fetch.
type Credentials struct {
	Username string
	Token    string
}

// Complete reports whether both the username and the token are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Token != ""
}

// String renders the credentials with the token masked.
func (c Credentials) String() string {
	username := c.Username
	if username == "" {
		username = "Not set"
	}
	token := "Not set"
	if c.Token != "" {
		token = strings.Repeat("*", len(c.Token))
	}
	return fmt.Sprintf("Username: %s\nToken: %s", username, token)
}
