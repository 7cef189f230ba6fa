// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/app/handlers"
	"github.com/amirphl/covercube-quote-adapter/app/middleware"
	"github.com/amirphl/covercube-quote-adapter/config"
	_ "github.com/amirphl/covercube-quote-adapter/docs"
	"github.com/amirphl/covercube-quote-adapter/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app          *fiber.App
	cfg          *config.ProductionConfig
	quoteHandler handlers.QuoteHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.ProductionConfig, quoteHandler handlers.QuoteHandlerInterface) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Covercube Quote Adapter",
		ServerHeader: "Covercube-Quote-Adapter",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:          app,
		cfg:          cfg,
		quoteHandler: quoteHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	// Global middleware
	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, middleware.MetricsHandler())
	}

	api := r.app.Group("/api")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// API documentation routes (development only)
	if r.isDevelopment() {
		api.Get("/docs", r.getAPIDocumentation)
		api.Get("/swagger.json", r.serveSwaggerJSON)
	}

	api.Post("/quote", r.rateLimiter(), r.quoteHandler.RequestQuote)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNowRFC3339(),
				requestid.FromContext(c),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000, // 1 year
		ContentSecurityPolicy:     "default-src 'none'; frame-ancestors 'none';",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// CORS middleware
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.AllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           r.cfg.Security.CORSMaxAge,
	}))

	// Compression middleware
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// The generated API document only changes between deployments
	r.app.Use(cache.New(cache.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Method() != fiber.MethodGet || !strings.HasSuffix(c.Path(), "/swagger.json")
		},
		Expiration: 30 * time.Minute,
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Access log in JSON
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${respHeader:X-Request-ID}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Stream:     log.Writer(),
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health" || c.Path() == r.cfg.Metrics.Path
		},
	}))
}

// rateLimiter limits quote requests per client IP
func (r *FiberRouter) rateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        r.cfg.Security.GlobalRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "Too many quote requests, please retry later",
			})
		},
	})
}

func (r *FiberRouter) isDevelopment() bool {
	env := strings.ToLower(r.cfg.Deployment.Environment)
	return env == "development" || env == "dev" || env == "local"
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":      "ok",
			"timestamp":   utils.UTCNowRFC3339(),
			"version":     r.cfg.Deployment.Version,
			"service":     "covercube-quote-adapter",
			"environment": r.cfg.Deployment.Environment,
			"mock_mode":   r.cfg.Covercube.MockMode,
		},
	})
}

// API documentation endpoint
func (r *FiberRouter) getAPIDocumentation(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "API documentation retrieved successfully",
		Data: fiber.Map{
			"title":       "Covercube Quote Adapter API Documentation",
			"version":     r.cfg.Deployment.Version,
			"description": "Rate quote adapter for Arizona and Texas auto policies",
			"endpoints":   GetRouteDocumentation(),
		},
	})
}

// Serve Swagger JSON specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to load Swagger documentation",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: "Cannot " + c.Method() + " " + c.Path(),
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"

	// Retrieve the custom status code if it's a fiber.*Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error %d (request_id=%s): %v", code, requestid.FromContext(c), err)

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}

// GetRouteDocumentation returns API documentation
func GetRouteDocumentation() []map[string]any {
	return []map[string]any{
		{
			"method":      "POST",
			"path":        "/api/quote",
			"description": "Request a new business rate quote from Covercube",
			"parameters": map[string]any{
				"state":              "string (required) - AZ|TX",
				"IsNonOwner":         "string (optional) - Y for Texas non-owner policies",
				"policyTerm":         "string (required) - 6 Months|12 Months",
				"inceptionDate":      "string (required) - YYYY/MM/DD",
				"effectiveDate":      "string (required) - YYYY/MM/DD",
				"rateDate":           "string (required) - YYYY/MM/DD",
				"holderFirstName":    "string (required) - Policy holder first name",
				"holderLastName":     "string (required) - Policy holder last name",
				"address":            "string (required) - Garaging address",
				"city":               "string (required) - Garaging city",
				"zipCode":            "string (required) - Garaging ZIP code",
				"email":              "string (required) - Policy holder email",
				"cellPhone":          "string (required) - Policy holder cell phone",
				"BI":                 "string (required) - Bodily injury limit, e.g. 25/50",
				"PD":                 "string (required) - Property damage limit, e.g. 15",
				"payplan":            "string (required) - FP|6P|6P2",
				"drivers":            "array (required) - At least one driver",
				"vehicles":           "array - Required for owned policies, forbidden for Texas non-owner",
				"roadsideAssistance": "string (optional) - Y|N, not sent for Texas non-owner",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/health",
			"description": "Health check endpoint",
			"parameters":  map[string]any{},
		},
	}
}
