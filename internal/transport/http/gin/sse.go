package httpgin

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/precisionto/funnel-go/internal/service"
)

const sseHeartbeat = 15 * time.Second

// @Summary  Session event stream
// @Param    id  path  string  true  "Session ID"
// @Produce  text/event-stream
// @Router   /sessions/{id}/events [get]
func handleSessionEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		events, cancel := svcs.Funnel.Watch(c.Request.Context(), sessionID)
		defer cancel()

		ticker := time.NewTicker(sseHeartbeat)
		defer ticker.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case ev, ok := <-events:
				if !ok {
					return false
				}
				c.SSEvent(ev.Type, svcs.Funnel.GetState(c.Request.Context(), sessionID))
				return true
			case <-ticker.C:
				c.SSEvent("ping", time.Now().Unix())
				return true
			}
		})
	}
}
