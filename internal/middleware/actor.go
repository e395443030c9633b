package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	actorKey    = "actor"
	actorHeader = "X-Actor"

	// defaultActor is attributed when the caller does not identify itself.
	defaultActor = "system"
)

// Actor returns a Gin middleware that resolves the caller identity from
// the X-Actor header and stores it on the context for handlers to record
// in the audit trail. Every history event carries an actor, so a missing
// header falls back to the system identity rather than failing.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(actorHeader))
		if actor == "" {
			actor = defaultActor
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}
