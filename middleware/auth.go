// middleware/auth.go
package middleware

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the Telegram identity headers set by the
// Gateway and attaches them to the request context. X-User-ID is mandatory;
// display name and chat ID are best-effort (not every update carries them).
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawUserID := c.Get("X-User-ID")
		if rawUserID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with user context",
			})
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil {
			log.Printf("❌ [USER_CTX] Bad X-User-ID %q on %s", rawUserID, c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid X-User-ID",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("display_name", c.Get("X-Display-Name"))

		if rawChatID := c.Get("X-Chat-ID"); rawChatID != "" {
			if chatID, err := strconv.ParseInt(rawChatID, 10, 64); err == nil {
				c.Locals("chat_id", chatID)
			}
		}

		return c.Next()
	}
}

// UserID reads the authenticated user's ID off the context.
func UserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("user_id").(int64)
	return id
}

// DisplayName reads the Gateway-provided display name, which may be empty.
func DisplayName(c *fiber.Ctx) string {
	name, _ := c.Locals("display_name").(string)
	return name
}

// ChatID reads the originating chat ID; ok is false for private-only updates.
func ChatID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals("chat_id").(int64)
	return id, ok
}

// AdminOnlyMiddleware restricts routes to the bot operators listed in
// ADMIN_USER_IDS (comma-separated Telegram user IDs). Must run after
// UserContextMiddleware.
func AdminOnlyMiddleware() fiber.Handler {
	rawIDs := os.Getenv("ADMIN_USER_IDS")
	if rawIDs == "" {
		log.Fatal("❌ ADMIN_USER_IDS is not set — admin routes cannot be secured")
	}

	admins := map[int64]bool{}
	for _, part := range strings.Split(rawIDs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			log.Fatalf("❌ ADMIN_USER_IDS contains a non-numeric entry: %q", part)
		}
		admins[id] = true
	}

	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if !admins[userID] {
			log.Printf("🚫 [ADMIN] User %d denied on %s", userID, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
