package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dvoicu/deploy-assistant/internal/agent"
	"github.com/dvoicu/deploy-assistant/internal/api/middleware"
	"github.com/dvoicu/deploy-assistant/internal/mediator"
	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/dvoicu/deploy-assistant/internal/validator"
	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	mediator *mediator.Mediator
	tokens   *TokenStore
	username string
	password string
	logger   *zerolog.Logger
}

func NewHandler(med *mediator.Mediator, tokens *TokenStore, username string, password string, logger *zerolog.Logger) *Handler {
	return &Handler{
		mediator: med,
		tokens:   tokens,
		username: username,
		password: password,
		logger:   logger,
	}
}

// POST /api/v1/chat
// Body: ChatRequest
// Returns: ChatResponse. Guardrail blocks are 200s with a substitution
// reply; only infrastructure failures surface as error responses.
func (h *Handler) Chat(req *restful.Request, resp *restful.Response) {
	var chatRequest models.ChatRequest
	if err := req.ReadEntity(&chatRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	message := strings.TrimSpace(chatRequest.Message)
	if message == "" {
		middleware.HandleError(resp, errors.New("message cannot be empty"), http.StatusBadRequest)
		return
	}

	sessionID := chatRequest.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Msg("Start chat exchange")

	ctx := req.Request.Context()
	chatResponse, err := h.mediator.ProcessMessage(ctx, sessionID, message)
	if err != nil {
		h.writeServiceError(resp, ctx, sessionID, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("source", chatResponse.Source).
		Bool("monitored", chatResponse.Monitored).
		Msg("Chat exchange complete")

	resp.WriteHeaderAndEntity(http.StatusOK, chatResponse)
}

func (h *Handler) writeServiceError(resp *restful.Response, ctx context.Context, sessionID string, err error) {
	h.logger.Error().Err(err).Str("session_id", sessionID).Msg("Chat exchange failed")

	switch {
	case errors.Is(err, agent.ErrUnavailable):
		middleware.HandleError(resp, err, http.StatusBadGateway)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client is gone; status is best-effort.
		middleware.HandleError(resp, err, http.StatusServiceUnavailable)
	case errors.Is(err, validator.ErrConfiguration):
		middleware.HandleError(resp, err, http.StatusInternalServerError)
	default:
		middleware.HandleError(resp, err, http.StatusInternalServerError)
	}
}

// POST /api/v1/login
func (h *Handler) Login(req *restful.Request, resp *restful.Response) {
	if h.username == "" || h.password == "" {
		middleware.HandleError(resp, errors.New("server credentials are not configured"), http.StatusInternalServerError)
		return
	}

	var credentials models.LoginRequest
	if err := req.ReadEntity(&credentials); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if credentials.Username != h.username || credentials.Password != h.password {
		middleware.HandleError(resp, errors.New("invalid username or password"), http.StatusUnauthorized)
		return
	}

	token := h.tokens.Issue(credentials.Username)
	resp.WriteHeaderAndEntity(http.StatusOK, models.LoginResponse{
		Message: "Welcome back, " + credentials.Username + "!",
		Token:   token,
	})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
