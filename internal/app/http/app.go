package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	appmw "portfolio/internal/middleware"
	httprouters "portfolio/internal/transport/http"
	"portfolio/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Options struct {
	Host          string
	Port          string
	JWTSecret     string
	SessionSecret string
	// UploadsDir is served under /uploads when set.
	UploadsDir   string
	BodyLimit    string
	AllowOrigins []string
}

type Server struct {
	m        *http.ServeMux
	log      *slog.Logger
	e        *echo.Echo
	routers  *httprouters.Routers
	tokens   appmw.TokenParser
	sessions appmw.SessionToucher
	opts     Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, tokens appmw.TokenParser, tracker appmw.SessionToucher) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	if opts.BodyLimit == "" {
		opts.BodyLimit = "64M"
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(middleware.BodyLimit(opts.BodyLimit))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(opts.SessionSecret))))
	e.Use(appmw.PrometheusMetrics("/metrics", "/health"))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:        mux,
		log:      log,
		e:        e,
		routers:  routers,
		tokens:   tokens,
		sessions: tracker,
		opts:     opts,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// ServeHTTP lets the server be driven directly, e.g. from httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.opts.Host, s.opts.Port)
}

func (s *Server) adminOnly() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(s.opts.JWTSecret),
			SigningMethod: "HS256",
			ContextKey:    appmw.ContextTokenKey,
			ErrorHandler: func(c echo.Context, err error) error {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", err.Error()))
			},
		}),
		appmw.AdminSession(s.log, s.tokens, s.sessions),
	}
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.opts.UploadsDir != "" {
		s.e.Static("/uploads", s.opts.UploadsDir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/sections", s.routers.ListSections)
		api.GET("/sections/:section/media", s.routers.SectionMedia)
		api.GET("/sections/:section/carousels", s.routers.SectionCarousels)
		api.GET("/sections/:section/pairs", s.routers.SectionPairs)

		api.GET("/content", s.routers.ListContent)
		api.GET("/content/:section", s.routers.GetContent)

		api.POST("/contact", s.routers.SubmitContact)
	}

	auth := s.adminOnly()

	admin := api.Group("/admin")
	{
		admin.POST("/login", s.routers.Login)
		admin.POST("/refresh", s.routers.Refresh)
		admin.POST("/logout", s.routers.Logout, auth...)

		admin.POST("/media/migrate", s.routers.MigrateAllMedia, auth...)
		admin.POST("/media/delete", s.routers.DeleteManyMedia, auth...)
		admin.PUT("/media/item/:id", s.routers.ReplaceMedia, auth...)
		admin.DELETE("/media/item/:id", s.routers.DeleteMedia, auth...)
		admin.POST("/media/:section", s.routers.UploadMedia, auth...)
		admin.POST("/media/:section/pairs", s.routers.UploadPair, auth...)
		admin.PUT("/media/:section/order", s.routers.ReorderMedia, auth...)
		admin.PUT("/media/:section/sequence", s.routers.MoveMedia, auth...)
		admin.POST("/media/:section/migrate", s.routers.MigrateMedia, auth...)

		admin.PUT("/content/:section", s.routers.SaveContent, auth...)
		admin.POST("/content/:section/migrate", s.routers.MigrateContent, auth...)
		admin.POST("/content/:section/image", s.routers.UploadContentImage, auth...)

		admin.GET("/messages", s.routers.ListMessages, auth...)
		admin.GET("/messages/unread", s.routers.UnreadMessages, auth...)
		admin.PATCH("/messages/:id/read", s.routers.MarkMessageRead, auth...)
		admin.DELETE("/messages/:id", s.routers.DeleteMessage, auth...)
	}
}
