package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/internal/storage"
	"github.com/fa-emon/glamhub-server/internal/store"
	"github.com/fa-emon/glamhub-server/types"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users []types.User
	err   error
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Role = "admin"
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), f.err
}

type fakeCourseRepo struct {
	courses []types.Course
	err     error
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]types.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.courses, nil
}

func (f *fakeCourseRepo) ListByCategory(ctx context.Context, category string) ([]types.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	matched := []types.Course{}
	for _, course := range f.courses {
		if course.Category == category {
			matched = append(matched, course)
		}
	}
	return matched, nil
}

func (f *fakeCourseRepo) GetByCourseID(ctx context.Context, courseID string) (types.Course, error) {
	if f.err != nil {
		return types.Course{}, f.err
	}
	for _, course := range f.courses {
		if course.CourseID == courseID {
			return course, nil
		}
	}
	return types.Course{}, store.ErrNotFound
}

func (f *fakeCourseRepo) Create(ctx context.Context, course types.Course) (types.Course, error) {
	if f.err != nil {
		return types.Course{}, f.err
	}
	course.ID = primitive.NewObjectID()
	f.courses = append(f.courses, course)
	return course, nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.courses {
		if f.courses[i].ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCourseRepo) SetImageKey(ctx context.Context, courseID, key string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.courses {
		if f.courses[i].CourseID == courseID {
			f.courses[i].ImageKey = key
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.courses)), f.err
}

type fakeCartRepo struct {
	items []types.CartItem
	err   error
}

func (f *fakeCartRepo) ListByEmail(ctx context.Context, email string) ([]types.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	matched := []types.CartItem{}
	for _, item := range f.items {
		if item.Email == email {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, item types.CartItem) (types.CartItem, error) {
	if f.err != nil {
		return types.CartItem{}, f.err
	}
	item.ID = primitive.NewObjectID()
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakePaymentRepo mimics the transactional checkout: the payment insert and
// the cart deletes land together or not at all.
type fakePaymentRepo struct {
	payments []types.Payment
	carts    *fakeCartRepo
	err      error
}

func (f *fakePaymentRepo) List(ctx context.Context) ([]types.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payments, nil
}

func (f *fakePaymentRepo) RecordCheckout(ctx context.Context, payment types.Payment, cartIDs []primitive.ObjectID) (types.Payment, int64, error) {
	if f.err != nil {
		return types.Payment{}, 0, f.err
	}
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	f.payments = append(f.payments, payment)

	var deleted int64
	for _, id := range cartIDs {
		n, _ := f.carts.Delete(ctx, id)
		deleted += n
	}
	return payment, deleted, nil
}

func (f *fakePaymentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.payments)), f.err
}

type fakeIntentCreator struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeIntentCreator) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "cs_test_secret", nil
}

type fakePublisher struct {
	channel string
	data    []byte
	err     error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, channel string, v any, attrs map[string]string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	f.channel = channel
	f.data = data
	return "msg-1", nil
}

// fakeObjectStorage keeps uploaded objects in memory.
type fakeObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) EnsureBucket(ctx context.Context) error { return nil }

func (f *fakeObjectStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStorage) Bucket() string { return "test" }

// testApp wires the full router over in-memory fakes.
type testApp struct {
	users    *fakeUserRepo
	courses  *fakeCourseRepo
	carts    *fakeCartRepo
	payments *fakePaymentRepo
	intents  *fakeIntentCreator
	events   *fakePublisher
	objects  *fakeObjectStorage
	tokens   *TokenService
	router   *chi.Mux
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		users:   &fakeUserRepo{},
		courses: &fakeCourseRepo{},
		carts:   &fakeCartRepo{},
		intents: &fakeIntentCreator{},
		events:  &fakePublisher{},
		objects: newFakeObjectStorage(),
		tokens:  NewTokenService("test-secret"),
	}
	app.payments = &fakePaymentRepo{carts: app.carts}

	userService := services.NewUserService(app.users)
	courseService := services.NewCourseService(app.courses)
	cartService := services.NewCartService(app.carts)
	paymentService := services.NewPaymentService(app.payments, app.intents, app.events, "usd")

	authMiddleware := RequireAuth(app.tokens)
	adminMiddleware := RequireAdmin(userService)

	router := chi.NewRouter()
	router.Get("/", Home)
	router.Get("/healthz", Healthz)
	AuthRouter(router, app.tokens)
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, authMiddleware, adminMiddleware)
	})
	router.Route("/allCourses", func(r chi.Router) {
		CourseRouter(r, courseService, storage.NewStorage(app.objects), authMiddleware, adminMiddleware)
	})
	router.Route("/allInstructors", func(r chi.Router) {
		InstructorRouter(r, courseService)
	})
	router.Route("/carts", func(r chi.Router) {
		CartRouter(r, cartService, authMiddleware)
	})
	PaymentRouter(router, paymentService, authMiddleware)
	AdminRouter(router, userService, courseService, paymentService, authMiddleware, adminMiddleware)

	app.router = router
	return app
}

func (a *testApp) addUser(email, role string) types.User {
	user := types.User{
		ID:    primitive.NewObjectID(),
		Email: email,
		Role:  role,
	}
	a.users.users = append(a.users.users, user)
	return user
}

func (a *testApp) tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := a.tokens.Issue(map[string]any{"email": email})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (a *testApp) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var parsed T
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return parsed
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func newRawRequest(t *testing.T, method, target string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	return httptest.NewRequest(method, target, nil), httptest.NewRecorder()
}
