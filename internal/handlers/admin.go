package handlers

import (
	"net/http"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/go-chi/chi/v5"
)

// AdminHandler provides the aggregate statistics endpoint.
type AdminHandler struct {
	userService    *services.UserService
	courseService  *services.CourseService
	paymentService *services.PaymentService
}

// NewAdminHandler constructs a handler with the provided services.
func NewAdminHandler(
	userService *services.UserService,
	courseService *services.CourseService,
	paymentService *services.PaymentService,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		courseService:  courseService,
		paymentService: paymentService,
	}
}

// AdminRouter registers the statistics route on the given router.
func AdminRouter(
	r chi.Router,
	userService *services.UserService,
	courseService *services.CourseService,
	paymentService *services.PaymentService,
	authMiddleware func(http.Handler) http.Handler,
	adminMiddleware func(http.Handler) http.Handler,
) {
	handler := NewAdminHandler(userService, courseService, paymentService)
	r.With(authMiddleware, adminMiddleware).Get("/admin-statistics", handler.Statistics)
}

// Statistics reports entity counts and total revenue across all payments.
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count users")
		return
	}

	courses, err := h.courseService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count courses")
		return
	}

	orders, err := h.paymentService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count orders")
		return
	}

	revenue, err := h.paymentService.Revenue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute revenue")
		return
	}

	writeJSON(w, http.StatusOK, StatisticsResponse{
		Users:      users,
		AllCourses: courses,
		Orders:     orders,
		Revenue:    revenue,
	})
}

// StatisticsResponse is the admin dashboard aggregate payload.
type StatisticsResponse struct {
	Users      int64   `json:"users"`
	AllCourses int64   `json:"allCourses"`
	Orders     int64   `json:"orders"`
	Revenue    float64 `json:"revenue"`
}
