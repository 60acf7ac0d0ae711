package middleware

import (
	"github.com/gin-gonic/gin"
)

// actorKey is the gin context key holding the resolved actor identity
const actorKey = "actor"

// ActorHeader is the request header a client may use to identify the
// person or device behind a mutation.
const ActorHeader = "X-Actor"

// Actor resolves the identity recorded in created_by fields for rows
// written through this request. The header wins over the configured
// default so shared deployments can attribute writes per client.
func Actor(defaultActor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the actor resolved by the Actor middleware
func ActorFromContext(c *gin.Context) string {
	return c.GetString(actorKey)
}
