package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// RequireUser gates a route on an active session. Unauthenticated
// requests are redirected to the login page rather than erroring.
// On success the user id and username are placed in request locals.
func RequireUser(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}

		userID, ok := sess.Get("user_id").(uint64)
		if !ok || userID == 0 {
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("user_id", userID)
		if username, ok := sess.Get("username").(string); ok {
			c.Locals("username", username)
		}

		return c.Next()
	}
}
