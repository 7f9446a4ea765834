package session_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/session"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

var _ = Describe("Keepalive", func() {
	var (
		store     *memoryStore
		fakeClock *clockwork.FakeClock
		manager   *session.Manager
		cfg       internal.SessionConfig
		pipeline  http.Handler
	)

	BeforeEach(func() {
		store = newMemoryStore()
		fakeClock = clockwork.NewFakeClockAt(time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC))
		cfg = internal.SessionConfig{
			CookieName:        "workforce_session",
			InactivityTimeout: 3 * time.Minute,
			MaxLifetime:       12 * time.Hour,
			LoginPath:         "/api/v1/auth/login",
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		manager = session.NewManager(store, fakeClock, cfg, logger)

		handler := session.NewKeepaliveHandler(transport.NewBaseHandler(logger), manager)
		pipeline = manager.Attach(manager.Enforce(manager.Record(http.HandlerFunc(handler.Keepalive))))
	})

	It("should return a small payload and reset the inactivity timer", func() {
		createRec := httptest.NewRecorder()
		sess, err := manager.Create(context.Background(), createRec, 7)
		Expect(err).NotTo(HaveOccurred())

		fakeClock.Advance(2 * time.Minute)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/session/keepalive", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: sess.Token})
		rec := httptest.NewRecorder()
		pipeline.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["status"]).To(Equal("ok"))
		Expect(body["user_id"]).To(BeNumerically("==", 7))

		value, found, err := store.Get(context.Background(), sess.Token, session.KeyLastActivity)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		parsed, err := time.Parse(session.LastActivityFormat, value)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Equal(fakeClock.Now())).To(BeTrue())
	})

	It("should reject a request without a session", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/session/keepalive", nil)
		rec := httptest.NewRecorder()
		pipeline.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})
