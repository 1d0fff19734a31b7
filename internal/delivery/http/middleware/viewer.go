package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/utils"
)

// Заголовки, которые выставляет шлюз аутентификации перед сервисом
const (
	HeaderUserID            = "X-User-ID"
	HeaderUserRole          = "X-User-Role"
	HeaderUserVerified      = "X-User-Verified"
	HeaderGrievancePassword = "X-Grievance-Password"
)

const viewerKey = "viewer"

// Viewer кладёт в контекст запроса зрителя. Отсутствие X-User-ID - анонимный зритель;
// некорректный X-User-ID отклоняется, чтобы не превратиться молча в анонима.
func Viewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderUserID)
		if raw == "" {
			c.Locals(viewerKey, domain.Anonymous())
			return c.Next()
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			return utils.SendError(c, errors.ErrUnauthenticated.WithMessage("Invalid "+HeaderUserID+" header"))
		}

		role := domain.Role(c.Get(HeaderUserRole))
		switch role {
		case domain.RoleAdmin, domain.RolePolitician, domain.RoleCitizen:
		default:
			role = domain.RoleCitizen
		}

		verified, _ := strconv.ParseBool(c.Get(HeaderUserVerified))

		c.Locals(viewerKey, domain.Viewer{
			UserID:        userID,
			Authenticated: true,
			Role:          role,
			Verified:      verified,
		})
		return c.Next()
	}
}

// ViewerFrom возвращает зрителя запроса; без middleware Viewer - анонимный
func ViewerFrom(c *fiber.Ctx) domain.Viewer {
	if v, ok := c.Locals(viewerKey).(domain.Viewer); ok {
		return v
	}
	return domain.Anonymous()
}
