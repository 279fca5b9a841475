package orchestrator

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-state/core/logger"
	"wallet-state/core/storage"
	"wallet-state/feature/snapshot"
	"wallet-state/feature/wallet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// heartbeatInterval is how often an idle event stream is pinged.
const heartbeatInterval = 15 * time.Second

// Handler handles HTTP requests for the wallet state.
type Handler struct {
	orch   *Orchestrator
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{orch: orch, logger: orch.logger}
}

// SnapshotReport describes a snapshot read from the request cookies.
type SnapshotReport struct {
	Format   snapshot.Format   `json:"format"`
	Migrated bool              `json:"migrated"`
	Snapshot snapshot.Snapshot `json:"snapshot"`
}

// RegisterRoutes registers the state routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/state", h.HandleGetState)
	app.Get("/state/stream", h.HandleStreamState)
	app.Get("/snapshot", h.HandleGetSnapshot)

	group := app.Group("/wallets")
	group.Post("/:id/connect", h.HandleConnect)
	group.Post("/:id/disconnect", h.HandleDisconnect)
}

// HandleGetState returns the current wallet state.
// @Summary Get State
// @Description Get the merged wallet and account state, including the hydration flag.
// @Tags state
// @Produce json
// @Success 200 {object} orchestrator.State "Current state"
// @Router /state [get]
func (h *Handler) HandleGetState(c *fiber.Ctx) error {
	return c.JSON(h.orch.Current())
}

// HandleStreamState streams every published state as server-sent events.
// @Summary Stream State
// @Description Stream state updates as server-sent events. Each event carries a full state.
// @Tags state
// @Produce text/event-stream
// @Success 200 {object} orchestrator.State "State events"
// @Router /state/stream [get]
func (h *Handler) HandleStreamState(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// Latest state wins when the client reads slower than states are published.
	updates := make(chan State, 1)
	sub := h.orch.Subscribe(func(s State) {
		select {
		case updates <- s:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- s
		}
	})

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer sub.Unsubscribe()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case s := <-updates:
				payload, err := json.Marshal(s)
				if err != nil {
					l.Error("Failed to encode state event", zap.Error(err))
					return
				}
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				l.Debug("State stream closed", zap.Error(err))
				return
			}
		}
	})

	return nil
}

// HandleConnect connects a wallet.
// @Summary Connect Wallet
// @Description Connect a wallet and mark it for auto-reconnect.
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID (e.g. 'polkadot:talisman')"
// @Success 200 {object} orchestrator.State "State after the request"
// @Failure 404 {object} map[string]string "Unknown wallet"
// @Failure 409 {object} map[string]string "Wallet still loading or already connected"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /wallets/{id}/connect [post]
func (h *Handler) HandleConnect(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.logger, c).With(zap.String("wallet_id", id))

	if err := h.orch.Connect(c.UserContext(), id); err != nil {
		return h.fail(c, l, "Wallet connect failed", err)
	}

	l.Info("Wallet connected")
	return c.JSON(h.orch.Current())
}

// HandleDisconnect disconnects a wallet.
// @Summary Disconnect Wallet
// @Description Disconnect a wallet and remove it from auto-reconnect.
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID (e.g. 'polkadot:talisman')"
// @Success 200 {object} orchestrator.State "State after the request"
// @Failure 404 {object} map[string]string "Unknown wallet"
// @Failure 409 {object} map[string]string "Wallet still loading or not connected"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /wallets/{id}/disconnect [post]
func (h *Handler) HandleDisconnect(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.logger, c).With(zap.String("wallet_id", id))

	if err := h.orch.Disconnect(c.UserContext(), id); err != nil {
		return h.fail(c, l, "Wallet disconnect failed", err)
	}

	l.Info("Wallet disconnected")
	return c.JSON(h.orch.Current())
}

// HandleGetSnapshot decodes the snapshot carried by the request cookies. Legacy
// values are answered with a Set-Cookie rewriting them in the compact format.
// @Summary Get Cookie Snapshot
// @Description Decode the wallet snapshot stored in the request cookies.
// @Tags snapshot
// @Produce json
// @Success 200 {object} orchestrator.SnapshotReport "Decoded snapshot"
// @Router /snapshot [get]
func (h *Handler) HandleGetSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	jar := storage.NewCookie(c.Get(fiber.HeaderCookie))
	store := snapshot.NewStore(c.UserContext(), jar, snapshot.StoreOptions{
		Key:       h.orch.cfg.StorageKey,
		Budget:    h.orch.cfg.SnapshotBudget,
		Scheduler: h.orch.sched,
		Logger:    l,
	})
	defer store.Close()

	report := SnapshotReport{Format: store.Format(), Snapshot: store.Snapshot()}
	for _, ck := range jar.Flush() {
		c.Cookie(&fiber.Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     ck.Path,
			Expires:  ck.Expires,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		report.Migrated = true
	}

	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	var pending *wallet.PendingWalletError
	switch {
	case errors.As(err, &pending):
		return fiber.StatusConflict
	case errors.Is(err, wallet.ErrUnknownWallet):
		return fiber.StatusNotFound
	case errors.Is(err, wallet.ErrAlreadyConnected), errors.Is(err, wallet.ErrNotConnected):
		return fiber.StatusConflict
	case errors.Is(err, wallet.ErrInvalidID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
