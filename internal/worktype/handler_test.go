package worktype_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/worktype"
)

func TestWorkType(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "WorkType Module Suite")
}

var _ = Describe("WorkType Handler", func() {
	var handler *worktype.Handler

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = worktype.NewHandler(&transport.BaseHandler{Logger: slogger})
	})

	Describe("GetWorkTypes", func() {
		It("should return the full catalog of work and leave types", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/worktypes", nil)
			rec := httptest.NewRecorder()

			handler.GetWorkTypes(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var response worktype.CatalogResponse
			err := json.Unmarshal(rec.Body.Bytes(), &response)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.WorkTypes).To(HaveLen(len(attendance.WorkTypeLabels) + len(leave.LeaveTypeLabels)))

			codes := make(map[string]worktype.WorkType)
			for _, wt := range response.WorkTypes {
				codes[wt.Kind+"/"+wt.Code] = wt
			}
			Expect(codes).To(HaveKey("attendance/WFH"))
			Expect(codes).To(HaveKey("attendance/IO"))
			Expect(codes).To(HaveKey("leave/SL"))
			Expect(codes["leave/SL"].Label).To(Equal("Sick Leave"))
		})

		It("should return a stable ordering", func() {
			first := worktype.Catalog()
			second := worktype.Catalog()
			Expect(second).To(Equal(first))
		})
	})
})
