package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/internal/storage"
	"github.com/fa-emon/glamhub-server/internal/store"
	"github.com/fa-emon/glamhub-server/types"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxImageMemory = 32 << 20
	maxImageBytes  = 8 << 20
	formFieldImage = "image"
)

// CourseHandler provides HTTP handlers for the course catalog. The same
// handler backs the instructor listings, which reuse the course collection.
type CourseHandler struct {
	courseService *services.CourseService
	images        *storage.Storage // nil when no object storage is configured
}

// NewCourseHandler constructs a handler with the provided dependencies.
func NewCourseHandler(courseService *services.CourseService, images *storage.Storage) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		images:        images,
	}
}

// CourseRouter registers catalog routes on the given router.
func CourseRouter(
	r chi.Router,
	courseService *services.CourseService,
	images *storage.Storage,
	authMiddleware func(http.Handler) http.Handler,
	adminMiddleware func(http.Handler) http.Handler,
) {
	handler := NewCourseHandler(courseService, images)

	r.Get("/", handler.List)
	r.With(authMiddleware, adminMiddleware).Post("/", handler.Create)
	r.Route("/category/{courseID}", func(r chi.Router) {
		r.Get("/", handler.GetByCourseID)
		r.Get("/image", handler.GetImage)
		r.With(authMiddleware, adminMiddleware).Post("/image", handler.UploadImage)
	})
	r.Get("/{category}", handler.ListByCategory)
	r.With(authMiddleware, adminMiddleware).Delete("/{category}", handler.Delete)
}

// InstructorRouter registers the instructor listings, backed by the same
// collection as the courses.
func InstructorRouter(r chi.Router, courseService *services.CourseService) {
	handler := NewCourseHandler(courseService, nil)

	r.Get("/", handler.List)
	r.Get("/{category}", handler.ListByCategory)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list courses")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	courses, err := h.courseService.ListByCategory(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list courses")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// GetByCourseID returns a single course by its stable public identifier.
// Absent records respond null, not 404.
func (h *CourseHandler) GetByCourseID(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	course, err := h.courseService.GetByCourseID(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch course")
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var course types.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.courseService.Create(r.Context(), course)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create course")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Delete removes a course by document id. The path position is shared with
// the category listing; for deletes the segment carries the id.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	deleted, err := h.courseService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete course")
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{DeletedCount: deleted})
}

// UploadImage stores a course image in object storage and records its key on
// the course document.
func (h *CourseHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	courseID := chi.URLParam(r, "courseID")

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File[formFieldImage]
	if len(files) != 1 {
		writeError(w, http.StatusBadRequest, "exactly one image file is required")
		return
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image file")
		return
	}
	data, err := readFileLimited(file, maxImageBytes)
	_ = file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := path.Join("courses", courseID)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.images.Put(r.Context(), key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	if err := h.courseService.SetImageKey(r.Context(), courseID, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update course")
		return
	}

	writeJSON(w, http.StatusOK, ImageResponse{Key: key})
}

// GetImage streams a previously uploaded course image.
func (h *CourseHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	courseID := chi.URLParam(r, "courseID")
	course, err := h.courseService.GetByCourseID(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch course")
		return
	}
	if course.ImageKey == "" {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}

	reader, err := h.images.Get(r.Context(), course.ImageKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch image")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, reader)
}

// ImageResponse reports the stored object key of an uploaded image.
type ImageResponse struct {
	Key string `json:"key"`
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
