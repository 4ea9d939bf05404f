package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	phaseService  *usecase.PhaseService
	rosterService *usecase.RosterService
	scoreService  *usecase.ScoreService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	phaseService *usecase.PhaseService,
	rosterService *usecase.RosterService,
	scoreService *usecase.ScoreService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		phaseService:  phaseService,
		rosterService: rosterService,
		scoreService:  scoreService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCommands(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCommands")
	defer span.End()

	commands := usecase.Commands(h.rosterService.CooldownPeriod(cooldown.BucketTeam))
	items := make([]commandDTO, 0, len(commands))
	for _, c := range commands {
		items = append(items, commandDTO{
			Name:        c.Name,
			Usage:       c.Usage,
			Description: c.Description,
			AdminOnly:   c.AdminOnly,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest strictly decodes a JSON body and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}
