package relay

import (
	"errors"

	"wallet-state/core/logger"
	"wallet-state/feature/wallet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests from discovery agents.
type Handler struct {
	relays map[wallet.Platform]*Relay
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler serving relays.
func NewHandler(relays []*Relay, logger *zap.Logger) *Handler {
	h := &Handler{relays: make(map[wallet.Platform]*Relay, len(relays)), logger: logger}
	for _, r := range relays {
		h.relays[r.Platform()] = r
	}
	return h
}

// RegisterRoutes registers the relay routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/relay/:platform", h.withRelay)
	group.Get("/wallets", h.HandleListWallets)
	group.Post("/wallets", h.HandleAnnounce)
	group.Delete("/wallets/:id", h.HandleWithdraw)
	group.Put("/wallets/:id/accounts", h.HandleReportAccounts)
}

func (h *Handler) withRelay(c *fiber.Ctx) error {
	r, ok := h.relays[wallet.Platform(c.Params("platform"))]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "platform not relayed",
		})
	}
	c.Locals("relay", r)
	return c.Next()
}

func relayOf(c *fiber.Ctx) *Relay {
	return c.Locals("relay").(*Relay)
}

// HandleListWallets lists the relayed wallets of a platform.
// @Summary List Relayed Wallets
// @Description List the wallets announced on a platform with their sessions.
// @Tags relay
// @Produce json
// @Param platform path string true "Platform (polkadot or ethereum)"
// @Success 200 {array} relay.Status "Wallets"
// @Failure 404 {object} map[string]string "Platform not relayed"
// @Router /relay/{platform}/wallets [get]
func (h *Handler) HandleListWallets(c *fiber.Ctx) error {
	statuses, err := relayOf(c).Statuses(c.UserContext())
	if err != nil {
		return h.fail(c, "Listing relayed wallets failed", err)
	}
	return c.JSON(statuses)
}

// HandleAnnounce announces a wallet.
// @Summary Announce Wallet
// @Description Announce a discovered wallet or refresh a known one.
// @Tags relay
// @Accept json
// @Produce json
// @Param platform path string true "Platform (polkadot or ethereum)"
// @Param announcement body relay.Announcement true "Wallet"
// @Success 201 {object} wallet.Wallet "Announced wallet"
// @Failure 400 {object} map[string]string "Invalid announcement"
// @Router /relay/{platform}/wallets [post]
func (h *Handler) HandleAnnounce(c *fiber.Ctx) error {
	var a Announcement
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	w, err := relayOf(c).Announce(c.UserContext(), a)
	if err != nil {
		return h.fail(c, "Wallet announcement failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// HandleWithdraw withdraws a wallet.
// @Summary Withdraw Wallet
// @Description Remove a relayed wallet with its session and accounts.
// @Tags relay
// @Param platform path string true "Platform (polkadot or ethereum)"
// @Param id path string true "Wallet ID (e.g. 'polkadot:talisman')"
// @Success 204
// @Failure 404 {object} map[string]string "Unknown wallet"
// @Router /relay/{platform}/wallets/{id} [delete]
func (h *Handler) HandleWithdraw(c *fiber.Ctx) error {
	if err := relayOf(c).Withdraw(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, "Wallet withdrawal failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReportAccounts replaces the accounts of a connected wallet.
// @Summary Report Accounts
// @Description Replace the account list of a connected wallet.
// @Tags relay
// @Accept json
// @Param platform path string true "Platform (polkadot or ethereum)"
// @Param id path string true "Wallet ID (e.g. 'polkadot:talisman')"
// @Param accounts body []relay.AccountReport true "Accounts"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid account"
// @Failure 404 {object} map[string]string "Unknown wallet"
// @Failure 409 {object} map[string]string "Wallet not connected"
// @Router /relay/{platform}/wallets/{id}/accounts [put]
func (h *Handler) HandleReportAccounts(c *fiber.Ctx) error {
	var reports []AccountReport
	if err := c.BodyParser(&reports); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := relayOf(c).ReportAccounts(c.UserContext(), c.Params("id"), reports); err != nil {
		return h.fail(c, "Account report failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.logger, c)

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidAnnouncement), errors.Is(err, wallet.ErrInvalidID):
		status = fiber.StatusBadRequest
	case errors.Is(err, wallet.ErrUnknownWallet):
		status = fiber.StatusNotFound
	case errors.Is(err, wallet.ErrNotConnected):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
