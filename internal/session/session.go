package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userKey = "user_id"

// Message is a one-shot flash notice shown on the next rendered page.
type Message struct {
	Level string // "success" or "danger"
	Text  string
}

func init() {
	gob.Register(Message{})
}

// SetUserID binds the authenticated user's identity to the session cookie.
func SetUserID(c *gin.Context, id uint) error {
	s := sessions.Default(c)
	s.Set(userKey, id)
	return s.Save()
}

// ClearUser removes the identity from the session.
func ClearUser(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(userKey)
	return s.Save()
}

// UserID returns the authenticated user's id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v := sessions.Default(c).Get(userKey)
	id, ok := v.(uint)
	return id, ok
}

func Flash(c *gin.Context, level, text string) {
	s := sessions.Default(c)
	s.AddFlash(Message{Level: level, Text: text})
	_ = s.Save()
}

// Flashes drains and returns the pending flash messages. It must be called
// before the response body is written, since draining rewrites the cookie.
func Flashes(c *gin.Context) []Message {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save()
	}
	out := make([]Message, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
