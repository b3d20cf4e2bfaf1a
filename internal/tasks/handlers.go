package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/hugh/plantnet/pkg/mail"
)

// Handler turns notification tasks into mail.
type Handler struct {
	mailer mail.Mailer
	logger *slog.Logger
}

func NewHandler(mailer mail.Mailer, logger *slog.Logger) *Handler {
	return &Handler{mailer: mailer, logger: logger}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOrderPlaced, h.HandleOrderPlaced)
	mux.HandleFunc(TypeRoleRequested, h.HandleRoleRequested)
}

func (h *Handler) HandleOrderPlaced(ctx context.Context, t *asynq.Task) error {
	var payload OrderPlacedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.CustomerEmail == "" {
		return fmt.Errorf("order %s has no customer email: %w", payload.OrderID, asynq.SkipRetry)
	}

	h.logger.Info("sending order notifications",
		"order_id", payload.OrderID,
		"customer", payload.CustomerEmail,
		"seller", payload.SellerEmail,
	)

	if err := h.mailer.Send(ctx, mail.Message{
		To:      payload.CustomerEmail,
		Subject: "Order Successful",
		Body: fmt.Sprintf("You've placed an order successfully. Order ID: %s, quantity %d, total %.2f.",
			payload.OrderID, payload.Quantity, payload.Price),
	}); err != nil {
		return err
	}

	if payload.SellerEmail == "" {
		return nil
	}
	return h.mailer.Send(ctx, mail.Message{
		To:      payload.SellerEmail,
		Subject: "Hurray!, You have an order to process.",
		Body:    fmt.Sprintf("Get the plants ready for %s. Order ID: %s.", displayName(payload), payload.OrderID),
	})
}

func (h *Handler) HandleRoleRequested(ctx context.Context, t *asynq.Task) error {
	var payload RoleRequestedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	h.logger.Info("sending role request acknowledgement", "email", payload.Email)

	return h.mailer.Send(ctx, mail.Message{
		To:      payload.Email,
		Subject: "Seller request received",
		Body:    "Your request to become a seller is waiting for an admin to review it.",
	})
}

func displayName(p OrderPlacedPayload) string {
	if p.CustomerName != "" {
		return p.CustomerName
	}
	return p.CustomerEmail
}
