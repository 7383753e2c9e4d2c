package cart

import (
	"github.com/gorilla/sessions"
)

const sessionKey = "cart"

// FromSession deserializes the cart stored in the session; a missing or
// malformed value yields an empty cart.
func FromSession(session *sessions.Session) *Cart {
	c := &Cart{}
	if raw, ok := session.Values[sessionKey]; ok {
		if entries, ok := raw.([]Entry); ok {
			c.Entries = entries
		}
	}
	return c
}

// Save serializes the full cart back into the session. The caller is
// responsible for session.Save before writing the response.
func Save(session *sessions.Session, c *Cart) {
	session.Values[sessionKey] = c.Entries
}
