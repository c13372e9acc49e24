package middleware

import (
	"log"
	"strings"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OperatorKey is the Locals key holding the authenticated operator name.
const OperatorKey = "operator"

// AuthRequired guards mutating product routes. The request must carry a
// bearer token issued to the configured operator.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "A bearer token is required to modify products")
		}

		operator, err := authService.Operator(token)
		if err != nil {
			log.Printf("Rejected %s %s: %v", c.Method(), c.Path(), err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(OperatorKey, operator)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="inventory"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}

// Open lets every request through. It stands in for AuthRequired when
// auth is disabled.
func Open() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
