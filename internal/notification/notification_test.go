package notification_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Module Suite")
}

// Capture mailer for testing
type captureMailer struct {
	mu       sync.Mutex
	messages []notification.Message
	sendErr  error
}

func (m *captureMailer) Send(ctx context.Context, msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *captureMailer) sent() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

var _ = Describe("Notification", func() {
	var (
		mailer     *captureMailer
		dispatcher *notification.Dispatcher
		handler    *notification.EventHandler
		logger     *slog.Logger
	)

	BeforeEach(func() {
		mailer = &captureMailer{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher = notification.NewDispatcher(mailer, 2, 16, logger)
		handler = notification.NewEventHandler(dispatcher, logger)
	})

	AfterEach(func() {
		dispatcher.Shutdown()
	})

	Describe("HandleUserRegistered", func() {
		It("should email the verification link to the new user", func() {
			event := events.NewUserRegisteredEvent(
				1,
				"new@example.com",
				"New User",
				"http://localhost:8080/api/v1/auth/verify-email/1/token123",
			)

			err := handler.HandleUserRegistered(context.Background(), event)
			Expect(err).NotTo(HaveOccurred())

			Eventually(mailer.sent, time.Second).Should(HaveLen(1))
			msg := mailer.sent()[0]
			Expect(msg.To).To(Equal("new@example.com"))
			Expect(msg.Subject).To(ContainSubstring("Verify"))
			Expect(msg.Body).To(ContainSubstring("token123"))
		})

		It("should reject an event of the wrong type", func() {
			event := events.NewLeaveDecidedEvent(1, 1, "x@example.com", leave.LeaveTypeAnnual, leave.StatusApproved, "2026-03-20", "2026-03-21")

			err := handler.HandleUserRegistered(context.Background(), event)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("HandleLeaveDecided", func() {
		It("should email the requester with the decision", func() {
			event := events.NewLeaveDecidedEvent(
				7,
				2,
				"employee@example.com",
				leave.LeaveTypeSick,
				leave.StatusDenied,
				"2026-03-20",
				"2026-03-22",
			)

			err := handler.HandleLeaveDecided(context.Background(), event)
			Expect(err).NotTo(HaveOccurred())

			Eventually(mailer.sent, time.Second).Should(HaveLen(1))
			msg := mailer.sent()[0]
			Expect(msg.To).To(Equal("employee@example.com"))
			Expect(msg.Subject).To(ContainSubstring("denied"))
			Expect(msg.Body).To(ContainSubstring("2026-03-20"))
		})
	})

	Describe("end to end through the bus", func() {
		It("should deliver mail for published events", func() {
			bus := events.NewEventBus(logger)
			handler.RegisterEventHandlers(bus)

			err := bus.Publish(context.Background(), events.NewUserRegisteredEvent(
				3, "bus@example.com", "Bus User", "http://localhost/verify"))
			Expect(err).NotTo(HaveOccurred())

			Eventually(mailer.sent, time.Second).Should(HaveLen(1))
		})
	})
})
