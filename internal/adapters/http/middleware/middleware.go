package middleware

import (
	"errors"
	"time"

	"carconnect/internal/config"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LocalRequestID holds the request ID assigned by Setup
const LocalRequestID = "requestid"

const (
	apiRequestsPerMinute  = 100
	authRequestsPerMinute = 10
)

// Setup configures all middlewares for the application
func Setup(app *fiber.App, cfg *config.Config) {
	// Recover middleware - catches panics
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDev()}))

	// Every request gets an ID; bookings and logins are traced by it
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Security Headers middleware (Helmet)
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// General API limit per client IP
	app.Use(limiter.New(limiter.Config{
		Max:        apiRequestsPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "api:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "Too many requests, please slow down")
		},
	}))

	// Request log goes to the same sink as the application log
	format := "${time} | ${status} | ${latency} | ${locals:requestid} | ${method} ${path}\n"
	if !cfg.IsDev() {
		format = "${time} | ${status} | ${latency} | ${locals:requestid} | ${ip} | ${method} ${path} | ${error}\n"
	}
	app.Use(logger.New(logger.Config{
		Format:     format,
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Output:     logrus.StandardLogger().Out,
	}))

	// CORS middleware
	allowOrigins := cfg.GetAllowedOrigins()
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization",
		ExposeHeaders: fiber.HeaderXRequestID,
		// Cannot be true with AllowOrigins: "*"
		AllowCredentials: allowOrigins != "*",
	}))
}

// AuthRateLimiter limits login and registration attempts. Each endpoint
// keeps its own bucket so customer and admin logins do not starve each other.
func AuthRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        authRequestsPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.Path() + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logrus.WithFields(logrus.Fields{
				"ip":         c.IP(),
				"path":       c.Path(),
				"request_id": c.Locals(LocalRequestID),
			}).Warn("Auth rate limit reached")
			return response.Error(c, fiber.StatusTooManyRequests, "Too many login attempts, try again in a minute")
		},
	})
}

// CustomErrorHandler renders errors that escape the handlers in the response envelope
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.Locals(LocalRequestID),
		}).Error("Unhandled request error")
	}

	return response.Error(c, code, message)
}
