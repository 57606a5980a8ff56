package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	custommw "movie_catalog/internal/middleware"
	tokensvc "movie_catalog/internal/services/token_service"
	httprouters "movie_catalog/internal/transport/http"
	"movie_catalog/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m          *http.ServeMux
	log        *slog.Logger
	e          *echo.Echo
	routers    *httprouters.Routers
	host       string
	port       string
	uploadsDir string
}

func New(log *slog.Logger, host, port, uploadsDir string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(custommw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Info("statsviz start with error", slog.Any("error", err.Error()))
	}

	return &Server{
		m:          mux,
		log:        log,
		e:          e,
		routers:    routers,
		host:       host,
		port:       port,
		uploadsDir: uploadsDir,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// authRequired verifies the Bearer access token. An absent or malformed
// header yields 400, a token that fails verification yields 403.
func (s *Server) authRequired() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return s.routers.AuthService.VerifyAccessToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, tokensvc.ErrInvalidToken) {
				return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("invalid_token", "Invalid Token"))
			}

			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("token_required", "Token not present"))
		},
	})
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.Static("/uploads", s.uploadsDir)

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	api := s.e.Group("/api/v1")
	{
		userGroup := api.Group("/users")
		{
			userGroup.POST("", s.routers.Register)
			userGroup.POST("/login", s.routers.Login)
			userGroup.POST("/refresh", s.routers.Refresh)
			userGroup.DELETE("/logout", s.routers.Logout)
			userGroup.POST("/upload-profile", s.routers.UploadProfileImage)
		}

		movieGroup := api.Group("/movies")
		{
			movieGroup.POST("", s.routers.CreateMovie)
			movieGroup.GET("", s.routers.ListMovies)
			movieGroup.GET("/genre/:genre", s.routers.MoviesByGenre)
			movieGroup.GET("/:id", s.routers.GetMovie)
			movieGroup.PUT("/:id", s.routers.UpdateMovie)
			movieGroup.DELETE("/:id", s.routers.DeleteMovie)

			movieGroup.GET("/:id/reviews", s.routers.ListMovieReviews)
			movieGroup.POST("/:id/reviews", s.routers.CreateReview, s.authRequired())
			movieGroup.PUT("/reviews/:id", s.routers.UpdateReview, s.authRequired())
			movieGroup.DELETE("/reviews/:id", s.routers.DeleteReview, s.authRequired())
		}
	}
}

// Echo exposes the underlying echo instance. Used by tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
