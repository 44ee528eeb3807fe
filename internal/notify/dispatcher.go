package notify

import (
	"context"
	"log/slog"

	"compass.app/intake/common/logger"
	"compass.app/intake/internal/model"
	"compass.app/intake/internal/queue"
)

// FeedConsumer is the slice of the change feed consumer the dispatcher needs.
type FeedConsumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
}

// Dispatcher turns change feed INSERT events into notification emails.
// Delivery is best-effort: a failed send is logged and the event is acked
// anyway, so one broken record never blocks the rest of the batch and
// nothing is retried.
type Dispatcher struct {
	consumer FeedConsumer
	sender   Sender
	team     string
	logger   *slog.Logger
}

func NewDispatcher(consumer FeedConsumer, sender Sender, teamAddress string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		consumer: consumer,
		sender:   sender,
		team:     teamAddress,
		logger:   log,
	}
}

// Run reads and processes batches until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msgs, err := d.consumer.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.ErrorContext(ctx, "failed to read change feed", "error", err)
			continue
		}

		d.ProcessBatch(ctx, msgs)
	}
}

// ProcessBatch handles one batch of feed messages. Every message is acked
// exactly once regardless of outcome.
func (d *Dispatcher) ProcessBatch(ctx context.Context, msgs []queue.Message) {
	for _, msg := range msgs {
		d.processOne(ctx, msg)

		if err := d.consumer.Ack(ctx, msg); err != nil {
			d.logger.ErrorContext(ctx, "failed to ack message", "error", err, "message_id", msg.ID)
		}
	}
}

func (d *Dispatcher) processOne(ctx context.Context, msg queue.Message) {
	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "notify.process_record")
	defer sc.End()
	ctx = sc.Context()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ReferenceNumber: logger.Ptr(msg.Record.ReferenceNumber),
		MessageID:       logger.Ptr(msg.ID),
		EventType:       logger.Ptr(string(msg.EventType)),
		Component:       "intake.notify.dispatcher",
	})

	if msg.EventType != model.EventTypeInsert {
		d.logger.DebugContext(ctx, "ignoring non-insert event")
		return
	}

	d.logger.InfoContext(ctx, "processing intake record")

	if err := d.sendEmail(ctx, msg.Record, KindConfirmation); err != nil {
		sc.RecordError(err)
		d.logger.ErrorContext(ctx, "failed to send confirmation email", "error", err)
	}
	if err := d.sendEmail(ctx, msg.Record, KindTeam); err != nil {
		sc.RecordError(err)
		d.logger.ErrorContext(ctx, "failed to send team notification", "error", err)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, record model.IntakeRecord, kind EmailKind) error {
	html, text, err := Render(record, kind)
	if err != nil {
		return err
	}

	to := d.team
	if kind == KindConfirmation && record.SubmittedBy != nil && *record.SubmittedBy != "" {
		to = *record.SubmittedBy
	}

	return d.sender.Send(ctx, Email{
		To:       to,
		Subject:  Subject(record, kind),
		HTMLBody: html,
		TextBody: text,
	})
}
