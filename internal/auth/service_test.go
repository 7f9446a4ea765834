package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/core/events"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

const goodPassword = "Sup3rSecret!Pass"

// Mock repository for testing
type mockUserRepository struct {
	usersByEmail map[string]*userDatamodel.User
	usersByID    map[int64]*userDatamodel.User
	createError  error
	nextID       int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail: make(map[string]*userDatamodel.User),
		usersByID:    make(map[int64]*userDatamodel.User),
		nextID:       1,
	}
}

func (m *mockUserRepository) seedUser(email, password string, active bool) *userDatamodel.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &userDatamodel.User{
		ID:           m.nextID,
		Email:        email,
		Name:         "Seeded User",
		PasswordHash: string(hash),
		IsActive:     active,
		Profile:      &userDatamodel.Profile{ID: m.nextID + 100, UserID: m.nextID},
	}
	m.nextID++
	m.usersByEmail[email] = u
	m.usersByID[u.ID] = u
	return u
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	u, ok := m.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	u, ok := m.usersByID[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockUserRepository) CreateWithProfile(u *userDatamodel.User, p *userDatamodel.Profile) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	p.ID = m.nextID + 100
	p.UserID = u.ID
	m.nextID++
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
	return nil
}

func (m *mockUserRepository) Activate(userID int64) error {
	u, ok := m.usersByID[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.IsActive = true
	if u.Profile != nil {
		u.Profile.IsEmailVerified = true
	}
	return nil
}

func (m *mockUserRepository) UpdatePasswordHash(userID int64, hash string) error {
	u, ok := m.usersByID[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		service   *auth.Service
		mockRepo  *mockUserRepository
		bus       *events.EventBus
		fakeClock *clockwork.FakeClock
		logger    *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		fakeClock = clockwork.NewFakeClockAt(time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC))
		tokens := auth.NewVerificationTokenGenerator("test-secret-at-least-32-bytes-long!!", time.Hour, fakeClock)
		service = auth.NewService(mockRepo, tokens, auth.NewPasswordPolicy(12), bus, "http://localhost:8080", bcrypt.MinCost, logger)
	})

	Describe("Register", func() {
		Context("when registration is valid", func() {
			It("should create an inactive account", func() {
				u, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "new@example.com",
					Name:     "New User",
					Password: goodPassword,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(u.IsActive).To(BeFalse())
				Expect(u.IsEmailVerified).To(BeFalse())
			})

			It("should normalize the email to lowercase", func() {
				u, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "  MiXeD@Example.COM ",
					Name:     "New User",
					Password: goodPassword,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(u.Email).To(Equal("mixed@example.com"))
			})

			It("should publish a registration event with the verification link", func() {
				received := make(chan events.Event, 1)
				bus.Subscribe(events.EventTypeUserRegistered, func(ctx context.Context, event events.Event) error {
					received <- event
					return nil
				})

				u, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "new@example.com",
					Name:     "New User",
					Password: goodPassword,
				})
				Expect(err).NotTo(HaveOccurred())

				var event events.Event
				Eventually(received).Should(Receive(&event))
				registered, ok := event.(*events.UserRegisteredEvent)
				Expect(ok).To(BeTrue())
				Expect(registered.UserID).To(Equal(u.ID))
				Expect(registered.VerificationURL).To(ContainSubstring("/api/v1/auth/verify-email/"))
			})
		})

		Context("when the email is already registered", func() {
			It("should reject the duplicate", func() {
				mockRepo.seedUser("taken@example.com", goodPassword, true)

				_, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "taken@example.com",
					Name:     "Dup",
					Password: goodPassword,
				})

				Expect(errors.Is(err, auth.ErrDuplicateEmail)).To(BeTrue())
			})

			It("should reject duplicates differing only by case", func() {
				mockRepo.seedUser("taken@example.com", goodPassword, true)

				_, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "TAKEN@Example.com",
					Name:     "Dup",
					Password: goodPassword,
				})

				Expect(errors.Is(err, auth.ErrDuplicateEmail)).To(BeTrue())
			})
		})

		Context("when the password violates the policy", func() {
			It("should reject a short password", func() {
				_, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "x@example.com",
					Name:     "X",
					Password: "Ab1!",
				})
				Expect(err).To(HaveOccurred())
			})

			It("should reject a password without an uppercase letter", func() {
				_, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "x@example.com",
					Name:     "X",
					Password: "lowercase1only!!",
				})
				Expect(err).To(HaveOccurred())
			})

			It("should reject a password without a digit", func() {
				_, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "x@example.com",
					Name:     "X",
					Password: "NoDigitsAtAll!!",
				})
				Expect(err).To(HaveOccurred())
			})

			It("should reject a password without a special character", func() {
				_, err := service.Register(context.Background(), auth.RegisterDTO{
					Email:    "x@example.com",
					Name:     "X",
					Password: "NoSpecials12345",
				})
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Authenticate", func() {
		Context("with correct credentials for an active account", func() {
			It("should return the principal", func() {
				seeded := mockRepo.seedUser("user@example.com", goodPassword, true)

				u, err := service.Authenticate(auth.LoginDTO{
					Email:    "user@example.com",
					Password: goodPassword,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(u.ID).To(Equal(seeded.ID))
			})
		})

		Context("with a wrong password", func() {
			It("should reject the login", func() {
				mockRepo.seedUser("user@example.com", goodPassword, true)

				_, err := service.Authenticate(auth.LoginDTO{
					Email:    "user@example.com",
					Password: "Wrong1Password!",
				})

				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeTrue())
			})
		})

		Context("with an unknown email", func() {
			It("should reject the login", func() {
				_, err := service.Authenticate(auth.LoginDTO{
					Email:    "nobody@example.com",
					Password: goodPassword,
				})

				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeTrue())
			})
		})

		Context("with correct credentials for an unverified account", func() {
			It("should reject the login", func() {
				mockRepo.seedUser("pending@example.com", goodPassword, false)

				_, err := service.Authenticate(auth.LoginDTO{
					Email:    "pending@example.com",
					Password: goodPassword,
				})

				Expect(errors.Is(err, auth.ErrUserInactive)).To(BeTrue())
			})
		})
	})

	Describe("VerifyEmail", func() {
		register := func() (int64, string) {
			u, err := service.Register(context.Background(), auth.RegisterDTO{
				Email:    "verify@example.com",
				Name:     "Verify Me",
				Password: goodPassword,
			})
			Expect(err).NotTo(HaveOccurred())

			tokens := auth.NewVerificationTokenGenerator("test-secret-at-least-32-bytes-long!!", time.Hour, fakeClock)
			token, err := tokens.Generate(u.ID)
			Expect(err).NotTo(HaveOccurred())
			return u.ID, token
		}

		Context("with a valid token", func() {
			It("should activate the account", func() {
				uid, token := register()

				Expect(service.VerifyEmail(uid, token)).To(Succeed())

				record, err := mockRepo.GetByID(uid)
				Expect(err).NotTo(HaveOccurred())
				Expect(record.IsActive).To(BeTrue())
			})

			It("should be idempotent for an already active account", func() {
				uid, token := register()

				Expect(service.VerifyEmail(uid, token)).To(Succeed())
				Expect(service.VerifyEmail(uid, token)).To(Succeed())
			})
		})

		Context("with a token bound to a different uid", func() {
			It("should reject without state change", func() {
				uid, token := register()
				other := mockRepo.seedUser("other@example.com", goodPassword, false)

				err := service.VerifyEmail(other.ID, token)
				Expect(errors.Is(err, auth.ErrInvalidToken)).To(BeTrue())

				record, getErr := mockRepo.GetByID(uid)
				Expect(getErr).NotTo(HaveOccurred())
				Expect(record.IsActive).To(BeFalse())
			})
		})

		Context("with an expired token", func() {
			It("should reject with a token expiry error", func() {
				uid, token := register()

				fakeClock.Advance(2 * time.Hour)

				err := service.VerifyEmail(uid, token)
				Expect(errors.Is(err, auth.ErrTokenExpired)).To(BeTrue())
			})
		})

		Context("with a garbage token", func() {
			It("should reject it", func() {
				uid, _ := register()

				err := service.VerifyEmail(uid, "not.a.jwt")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ChangePassword", func() {
		const newPassword = "An0ther$ecret!!"

		Context("with the correct current password", func() {
			It("should rotate the credential", func() {
				seeded := mockRepo.seedUser("user@example.com", goodPassword, true)

				err := service.ChangePassword(seeded.ID, auth.ChangePasswordDTO{
					CurrentPassword: goodPassword,
					NewPassword:     newPassword,
				})
				Expect(err).NotTo(HaveOccurred())

				_, err = service.Authenticate(auth.LoginDTO{Email: "user@example.com", Password: newPassword})
				Expect(err).NotTo(HaveOccurred())
			})
		})

		Context("with a wrong current password", func() {
			It("should reject the change", func() {
				seeded := mockRepo.seedUser("user@example.com", goodPassword, true)

				err := service.ChangePassword(seeded.ID, auth.ChangePasswordDTO{
					CurrentPassword: "Wrong1Password!",
					NewPassword:     newPassword,
				})
				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeTrue())
			})
		})

		Context("when reusing the current password", func() {
			It("should reject the change", func() {
				seeded := mockRepo.seedUser("user@example.com", goodPassword, true)

				err := service.ChangePassword(seeded.ID, auth.ChangePasswordDTO{
					CurrentPassword: goodPassword,
					NewPassword:     goodPassword,
				})
				Expect(errors.Is(err, auth.ErrPasswordReuse)).To(BeTrue())
			})
		})

		Context("when the new password violates the policy", func() {
			It("should reject the change", func() {
				seeded := mockRepo.seedUser("user@example.com", goodPassword, true)

				err := service.ChangePassword(seeded.ID, auth.ChangePasswordDTO{
					CurrentPassword: goodPassword,
					NewPassword:     "weak",
				})
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
