package handlers

import (
	"io"

	"kirana-tracker/internal/events"
	"kirana-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// StreamChanges is the change feed behind the live dashboards: an SSE
// stream of committed mutations. A client re-runs its queries when a
// change touches a table it renders. Retailers only hear about their
// own store's rows.
func StreamChanges(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	ch := events.Default.Subscribe()
	defer events.Default.Unsubscribe(ch)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case change, ok := <-ch:
			if !ok {
				return false
			}
			if user.Role == models.RoleRetailer && change.UserID != "" && change.UserID != user.Email {
				return true
			}
			c.SSEvent("change", change)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
