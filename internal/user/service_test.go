package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	membersByTenant map[int64][]*user.Member
	setManagerError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		membersByTenant: make(map[int64][]*user.Member),
	}
}

func (m *mockUserRepository) ListByTenant(tenantID int64, limit, offset int) ([]*user.Member, error) {
	return m.membersByTenant[tenantID], nil
}

func (m *mockUserRepository) GetMember(tenantID, userID int64) (*user.Member, error) {
	for _, member := range m.membersByTenant[tenantID] {
		if member.UserID == userID {
			return member, nil
		}
	}
	return nil, user.ErrMemberNotFound
}

func (m *mockUserRepository) GetMemberByProfileID(tenantID, profileID int64) (*user.Member, error) {
	for _, member := range m.membersByTenant[tenantID] {
		if member.ProfileID == profileID {
			return member, nil
		}
	}
	return nil, user.ErrMemberNotFound
}

func (m *mockUserRepository) SetManager(tenantID, userID int64, managerProfileID *int64) (bool, error) {
	if m.setManagerError != nil {
		return false, m.setManagerError
	}
	for _, member := range m.membersByTenant[tenantID] {
		if member.UserID == userID {
			member.ManagerID = managerProfileID
			return true, nil
		}
	}
	return false, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		logger   *slog.Logger
	)

	const tenantID = int64(1)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, logger)

		mockRepo.membersByTenant[tenantID] = []*user.Member{
			{UserID: 1, ProfileID: 11, Email: "admin@example.com", IsTenantAdmin: true},
			{UserID: 2, ProfileID: 12, Email: "manager@example.com", IsManager: true},
			{UserID: 3, ProfileID: 13, Email: "employee@example.com"},
		}
		mockRepo.membersByTenant[2] = []*user.Member{
			{UserID: 9, ProfileID: 91, Email: "other@example.com", IsManager: true},
		}
	})

	Describe("ListTenantUsers", func() {
		It("should return the tenant's members", func() {
			members, err := service.ListTenantUsers(tenantID, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(3))
		})
	})

	Describe("AssignManager", func() {
		Context("when assigning a manager in the same tenant", func() {
			It("should update the member", func() {
				managerProfileID := int64(12)

				member, err := service.AssignManager(tenantID, 3, &managerProfileID)

				Expect(err).NotTo(HaveOccurred())
				Expect(member.ManagerID).NotTo(BeNil())
				Expect(*member.ManagerID).To(Equal(managerProfileID))
			})
		})

		Context("when clearing the assignment", func() {
			It("should set the manager to nil", func() {
				managerProfileID := int64(12)
				_, err := service.AssignManager(tenantID, 3, &managerProfileID)
				Expect(err).NotTo(HaveOccurred())

				member, err := service.AssignManager(tenantID, 3, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(member.ManagerID).To(BeNil())
			})
		})

		Context("when the member is in another tenant", func() {
			It("should report not found", func() {
				managerProfileID := int64(12)

				_, err := service.AssignManager(tenantID, 9, &managerProfileID)

				Expect(errors.Is(err, user.ErrMemberNotFound)).To(BeTrue())
			})
		})

		Context("when the manager profile is in another tenant", func() {
			It("should reject the assignment", func() {
				otherTenantManager := int64(91)

				_, err := service.AssignManager(tenantID, 3, &otherTenantManager)

				Expect(errors.Is(err, user.ErrManagerNotFound)).To(BeTrue())
			})
		})

		Context("when the target profile is not a manager", func() {
			It("should reject the assignment", func() {
				notAManager := int64(11)

				_, err := service.AssignManager(tenantID, 3, &notAManager)

				Expect(errors.Is(err, user.ErrNotAManager)).To(BeTrue())
			})
		})

		Context("when users would manage themselves", func() {
			It("should reject the assignment", func() {
				ownProfile := int64(12)

				_, err := service.AssignManager(tenantID, 2, &ownProfile)

				Expect(errors.Is(err, user.ErrSelfManager)).To(BeTrue())
			})
		})
	})
})
