package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"souq-gateway/internal/events"
)

// eventsHandler streams bus events to the storefront as server-sent
// events, one message per published event, named after the event. Slow
// consumers drop events rather than block publishers.
func eventsHandler(bus *events.Bus) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bus == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "events unavailable"})
			return
		}

		ch := make(chan events.Event, 16)
		unsubscribe := bus.Subscribe(func(e events.Event) {
			select {
			case ch <- e:
			default:
			}
		})
		defer unsubscribe()

		c.Header("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case e := <-ch:
				c.SSEvent(e.EventName(), e)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
