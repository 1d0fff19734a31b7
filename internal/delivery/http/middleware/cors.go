package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// Заголовки идентичности выставляет шлюз, но браузерный клиент шлёт X-Grievance-Password сам.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000,http://localhost:5173",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Accept,Accept-Language,Authorization," +
			HeaderUserID + "," + HeaderUserRole + "," + HeaderUserVerified + "," + HeaderGrievancePassword,
		AllowCredentials: true,
	})
}
