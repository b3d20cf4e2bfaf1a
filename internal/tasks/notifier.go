package tasks

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier enqueues notification tasks on behalf of request handlers.
// Failures are logged and swallowed so a broken queue never fails a request.
// A Notifier with no client does nothing.
type Notifier struct {
	client Enqueuer
	logger *slog.Logger
}

func NewNotifier(client Enqueuer, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

func (n *Notifier) OrderPlaced(ctx context.Context, payload OrderPlacedPayload) {
	if n == nil || n.client == nil {
		return
	}
	task, err := NewOrderPlacedTask(payload)
	n.enqueue(ctx, task, err)
}

func (n *Notifier) RoleRequested(ctx context.Context, email string) {
	if n == nil || n.client == nil {
		return
	}
	task, err := NewRoleRequestedTask(RoleRequestedPayload{Email: email})
	n.enqueue(ctx, task, err)
}

func (n *Notifier) enqueue(ctx context.Context, task *asynq.Task, err error) {
	if err != nil {
		n.logger.Error("failed to build task", "error", err)
		return
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		n.logger.Error("failed to enqueue task", "type", task.Type(), "error", err)
		return
	}
	n.logger.Debug("task enqueued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
}
