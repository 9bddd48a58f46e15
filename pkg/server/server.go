// Package server wires the orchestrator to an HTTP transport, following
// the teacher's pkg/server.Server shape: an echo.Echo instance, CORS and
// request-logging middleware, and a thin per-route handler that only
// translates between JSON and the orchestrator's domain calls.
package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aiquest/classifier/pkg/httpapi"
	"github.com/aiquest/classifier/pkg/orchestrator"
	"github.com/aiquest/classifier/pkg/value"
)

// Server hosts the questionnaire HTTP API over an Orchestrator.
type Server struct {
	echo         *echo.Echo
	orchestrator *orchestrator.Orchestrator
	logger       *slog.Logger
}

// New builds a Server with CORS (any origin/method/header, per §6) and
// request logging wired in, matching the teacher's server construction.
func New(o *orchestrator.Orchestrator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{echo: e, orchestrator: o, logger: logger}
	s.routes()
	return s
}

// Handler exposes the underlying http.Handler, e.g. for httptest or a
// custom net/http.Server wrapper.
func (s *Server) Handler() http.Handler { return s.echo }

// Start runs the HTTP server on addr and blocks until the listener stops
// with an error.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) routes() {
	s.echo.POST("/start", s.handleStart)
	s.echo.GET("/module/:module_id", s.handleGetModule)
	s.echo.POST("/submit-answer", s.handleSubmitAnswer)
	s.echo.GET("/result", s.handleResult)
	s.echo.GET("/question/:question_id", s.handleGetQuestion)
	s.echo.GET("/health", s.handleHealth)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, httpapi.HealthResponse{Status: "ok"})
}

func (s *Server) handleStart(c echo.Context) error {
	res, err := s.orchestrator.Start(c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, httpapi.StartResponse{
		SessionID: res.SessionID,
		Module:    httpapi.ModuleDTOFrom(res.Module),
	})
}

func (s *Server) handleGetModule(c echo.Context) error {
	payload, err := s.orchestrator.GetModule(c.QueryParam("session_id"), c.Param("module_id"), c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, httpapi.GetModuleResponse{Module: httpapi.ModuleDTOFrom(payload)})
}

func (s *Server) handleGetQuestion(c echo.Context) error {
	q, err := s.orchestrator.GetQuestion(c.QueryParam("session_id"), c.Param("question_id"), c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, httpapi.GetQuestionResponse{Question: httpapi.QuestionDTOFrom(q)})
}

func (s *Server) handleResult(c echo.Context) error {
	res, err := s.orchestrator.Result(c.QueryParam("session_id"), c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, httpapi.ResultResponse{Parameters: res.Parameters, Conclusion: res.Conclusion})
}

func (s *Server) handleSubmitAnswer(c echo.Context) error {
	var req httpapi.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpapi.ErrorBody{Error: "malformed_request"})
	}

	answers := make(map[string]value.Value, len(req.Answers))
	for k, v := range req.Answers {
		answers[k] = value.FromAny(v)
	}

	res, err := s.orchestrator.SubmitAnswer(orchestrator.SubmitAnswerInput{
		SessionID: req.SessionID,
		ModuleID:  req.ModuleID,
		Answers:   answers,
		Replace:   req.Replace,
		Lang:      c.QueryParam("lang"),
	})
	if err != nil {
		return writeError(c, err)
	}

	next := httpapi.SubmitAnswerDTO(&res.Next)
	return c.JSON(http.StatusOK, httpapi.SubmitAnswerResponse{
		SessionID:      res.SessionID,
		Parameters:     res.Parameters,
		Next:           next,
		ModuleComplete: res.ModuleComplete,
		Module:         httpapi.ModuleDTOFrom(res.Module),
		Conclusion:     res.Conclusion,
	})
}

func writeError(c echo.Context, err error) error {
	status, detail := httpapi.MapError(err)
	return c.JSON(status, httpapi.ErrorBody{Error: detail})
}
