package notify_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"compass.app/intake/internal/model"
	"compass.app/intake/internal/notify"
	"compass.app/intake/internal/queue"
)

type mockSender struct {
	sendFn func(ctx context.Context, email notify.Email) error
	sent   []notify.Email
}

func (m *mockSender) Send(ctx context.Context, email notify.Email) error {
	m.sent = append(m.sent, email)
	if m.sendFn != nil {
		return m.sendFn(ctx, email)
	}
	return nil
}

type mockConsumer struct {
	acked []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	return nil, nil
}

func (m *mockConsumer) Ack(ctx context.Context, msg queue.Message) error {
	m.acked = append(m.acked, msg.ID)
	return nil
}

func insertMessage(id, ref string) queue.Message {
	submittedBy := "submitter@example.com"
	return queue.Message{
		ID:        id,
		EventType: model.EventTypeInsert,
		Record: model.IntakeRecord{
			ReferenceNumber: ref,
			Service:         "CloudWatch",
			CustomerProblem: "Customers cannot find their alarms across regions without hopping consoles.",
			Stakeholder:     "Not specified",
			SubmittedBy:     &submittedBy,
		},
	}
}

var _ = Describe("Dispatcher", func() {
	var (
		sender   *mockSender
		consumer *mockConsumer
		d        *notify.Dispatcher
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		sender = &mockSender{}
		consumer = &mockConsumer{}
		d = notify.NewDispatcher(consumer, sender, "team@example.com", nil)
	})

	It("sends a confirmation and a team email per insert", func() {
		d.ProcessBatch(ctx, []queue.Message{insertMessage("1-0", "SSO-UX-2026-09-01-001")})

		Expect(sender.sent).To(HaveLen(2))
		Expect(sender.sent[0].To).To(Equal("submitter@example.com"))
		Expect(sender.sent[0].Subject).To(ContainSubstring("UX Intake Submitted"))
		Expect(sender.sent[1].To).To(Equal("team@example.com"))
		Expect(sender.sent[1].Subject).To(ContainSubstring("New UX Intake"))
		Expect(consumer.acked).To(Equal([]string{"1-0"}))
	})

	It("falls back to the team address when the record has no submitter", func() {
		msg := insertMessage("1-0", "SSO-UX-2026-09-01-001")
		msg.Record.SubmittedBy = nil

		d.ProcessBatch(ctx, []queue.Message{msg})

		Expect(sender.sent).To(HaveLen(2))
		Expect(sender.sent[0].To).To(Equal("team@example.com"))
	})

	It("ignores non-insert events but still acks them", func() {
		msg := insertMessage("2-0", "SSO-UX-2026-09-01-002")
		msg.EventType = "MODIFY"

		d.ProcessBatch(ctx, []queue.Message{msg})

		Expect(sender.sent).To(BeEmpty())
		Expect(consumer.acked).To(Equal([]string{"2-0"}))
	})

	It("continues the batch after a failed send and acks every message", func() {
		failFor := "SSO-UX-2026-09-01-001"
		sender.sendFn = func(ctx context.Context, email notify.Email) error {
			if email.Subject == notify.Subject(model.IntakeRecord{ReferenceNumber: failFor}, notify.KindConfirmation) {
				return errors.New("smtp unavailable")
			}
			return nil
		}

		d.ProcessBatch(ctx, []queue.Message{
			insertMessage("1-0", failFor),
			insertMessage("2-0", "SSO-UX-2026-09-01-002"),
		})

		// Both records were attempted; the failure isolated to one send.
		Expect(sender.sent).To(HaveLen(4))
		Expect(consumer.acked).To(Equal([]string{"1-0", "2-0"}))
	})
})
