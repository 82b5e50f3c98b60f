package httputil

import "github.com/gin-gonic/gin"

// StaffActorKey is the gin context key holding the display name of the staff
// member performing the request, set by the staff auth middleware from the
// X-Staff-Actor header.
const StaffActorKey = "staff_actor"

// StaffActor returns the staff actor name for the request, or "staff" when
// the header was absent. Used as the author of milestones and audit entries.
func StaffActor(c *gin.Context) string {
	if actor := c.GetString(StaffActorKey); actor != "" {
		return actor
	}
	return "staff"
}
