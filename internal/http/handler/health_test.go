package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"compass.app/intake/internal/http/handler"
)

var _ = Describe("HealthHandler", func() {
	var (
		router *gin.Engine
		db     *mockPinger
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		db = &mockPinger{}
		h := handler.NewHealthHandler(db, "us-east-1")
		router.GET("/api/health", h.Check)
	})

	It("reports ok when the store responds", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("ok"))
		Expect(resp["storage"]).To(Equal("postgres"))
		Expect(resp["region"]).To(Equal("us-east-1"))
	})

	It("reports degraded when the store is unreachable", func() {
		db.pingFn = func(_ context.Context) error { return errors.New("dial tcp: refused") }

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("degraded"))
	})
})
