// Package queue implements the task manager capability on an in-process
// watermill pub/sub: enqueued invocations are published to a topic and a
// worker goroutine consumes and runs them. Recurring invocations are
// re-enqueued on a cron schedule.
package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/robfig/cron/v3"

	"github.com/stelgo/actionhub/pkg/protocol"
)

const Topic = "actionhub.executions"

// RunFunc executes one dequeued invocation.
type RunFunc func(ctx context.Context, req protocol.ExecuteRequest) (any, error)

type Queue struct {
	logger *slog.Logger
	pubSub *gochannel.GoChannel
	cron   *cron.Cron
}

func NewQueue(logger *slog.Logger) *Queue {
	logger = logger.With("module", "execution_queue")

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 1000,
		},
		watermill.NewSlogLogger(logger),
	)

	return &Queue{
		logger: logger,
		pubSub: pubSub,
		cron:   cron.New(),
	}
}

// Enqueue publishes the invocation, fire and forget.
func (q *Queue) Enqueue(ctx context.Context, req protocol.ExecuteRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)

	return q.pubSub.Publish(Topic, msg)
}

// Schedule re-enqueues the invocation on each tick of the cron expression.
func (q *Queue) Schedule(cronExpr string, req protocol.ExecuteRequest) error {
	_, err := q.cron.AddFunc(cronExpr, func() {
		if err := q.Enqueue(context.Background(), req); err != nil {
			q.logger.Error("Failed to enqueue scheduled execution",
				"action_type_id", req.ActionTypeID,
				"error", err)
		}
	})

	return err
}

// Start subscribes the worker and starts the cron scheduler. Failed
// executions are logged and acknowledged; the queue does not retry.
func (q *Queue) Start(ctx context.Context, run RunFunc) error {
	messages, err := q.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	q.cron.Start()

	go func() {
		for msg := range messages {
			var req protocol.ExecuteRequest

			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				q.logger.Error("Dropping malformed execution request", "error", err)
				msg.Ack()

				continue
			}

			if _, err := run(ctx, req); err != nil {
				q.logger.Error("Action execution failed",
					"action_type_id", req.ActionTypeID,
					"action_id", req.ActionID,
					"error", err)
			}

			msg.Ack()
		}
	}()

	return nil
}

func (q *Queue) Close() error {
	q.cron.Stop()

	return q.pubSub.Close()
}
