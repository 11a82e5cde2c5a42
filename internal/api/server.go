// Package api serves the JSON API used by the mobile app.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/fardannozami/quitzone/internal/app"
	"github.com/fardannozami/quitzone/internal/app/usecase"
	"github.com/fardannozami/quitzone/internal/domain"
)

type Config struct {
	Addr string
}

// Server exposes the Fiber application.
type Server struct {
	app *fiber.App
	uc  *app.Usecases
	cfg Config
}

func NewServer(cfg Config, uc *app.Usecases) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
		Output: log.StandardLogger().WriterLevel(log.DebugLevel),
	}))
	app.Use(cors.New())

	srv := &Server{app: app, uc: uc, cfg: cfg}
	srv.registerRoutes()
	return srv
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	log.WithField("addr", s.cfg.Addr).Info("HTTP API listening")
	return s.app.Listen(s.cfg.Addr)
}

// App returns the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api/v1")
	api.Get("/leaderboard", s.handleLeaderboard)

	users := api.Group("/users/:id")
	users.Get("/progress", s.handleProgress)
	users.Get("/chart", s.handleChart)
	users.Get("/records", s.handleListRecords)
	users.Post("/records", s.handleLogRecord)
	users.Put("/profile", s.handleSetProfile)
	users.Put("/price", s.handleSetPrice)
	users.Get("/settings", s.handleGetSettings)
	users.Put("/settings", s.handleUpdateSettings)
}

func (s *Server) handleProgress(c *fiber.Ctx) error {
	report, err := s.uc.Progress.Execute(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

func (s *Server) handleChart(c *fiber.Ctx) error {
	chart, err := s.uc.Chart.Execute(c.UserContext(), c.Params("id"), c.QueryInt("days", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chart})
}

func (s *Server) handleListRecords(c *fiber.Ctx) error {
	items, err := s.uc.Records.Execute(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items, "meta": fiber.Map{"count": len(items)}})
}

func (s *Server) handleLogRecord(c *fiber.Ctx) error {
	var payload usecase.LogInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	res, err := s.uc.Log.Execute(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if res.Updated {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"data": res})
}

func (s *Server) handleSetProfile(c *fiber.Ctx) error {
	var payload usecase.ProfileInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	p, err := s.uc.SetProfile.Execute(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": p})
}

func (s *Server) handleSetPrice(c *fiber.Ctx) error {
	var payload struct {
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	p, err := s.uc.SetPrice.Execute(c.UserContext(), c.Params("id"), payload.Price)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": p})
}

func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	settings, err := s.uc.Settings.Load(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settings})
}

func (s *Server) handleUpdateSettings(c *fiber.Ctx) error {
	var payload usecase.SettingsInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := s.uc.UpdateSettings.Execute(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settings})
}

func (s *Server) handleLeaderboard(c *fiber.Ctx) error {
	board, err := s.uc.Leaderboard.Execute(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": board})
}

// errorHandler maps domain errors to status codes and writes every error as
// {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, domain.ErrProfileNotFound):
		code, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidObjective),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidSettings):
		code, msg = fiber.StatusBadRequest, err.Error()
	}

	if code >= fiber.StatusInternalServerError {
		log.WithFields(log.Fields{
			"path":  c.Path(),
			"error": err,
		}).Error("Request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
