package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jagruti-foundation/apiserver/internal/auth"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/storage"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "http://localhost:8080"

type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

type fakeNewsRepo struct {
	nextID int
	items  map[int]types.News
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{nextID: 1, items: map[int]types.News{}}
}

func (r *fakeNewsRepo) List(_ context.Context, offset, limit int) ([]types.News, int, error) {
	var all []types.News
	for _, item := range r.items {
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeNewsRepo) Get(_ context.Context, id int) (types.News, error) {
	item, ok := r.items[id]
	if !ok {
		return types.News{}, store.ErrNotFound
	}
	return item, nil
}

func (r *fakeNewsRepo) Create(_ context.Context, item types.News) (types.News, error) {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeNewsRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeStoryRepo struct {
	nextID int
	items  []types.Story
}

func (r *fakeStoryRepo) List(_ context.Context) ([]types.Story, error) {
	return r.items, nil
}

func (r *fakeStoryRepo) Create(_ context.Context, item types.Story) (types.Story, error) {
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)
	return item, nil
}

type fakeGalleryRepo struct {
	nextID int
	items  []types.GalleryItem
}

func (r *fakeGalleryRepo) List(_ context.Context) ([]types.GalleryItem, error) {
	return r.items, nil
}

func (r *fakeGalleryRepo) Create(_ context.Context, item types.GalleryItem) (types.GalleryItem, error) {
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)
	return item, nil
}

type fakeDonationRepo struct {
	nextID int
	items  []types.Donation
}

func (r *fakeDonationRepo) Create(_ context.Context, donation types.Donation) (types.Donation, error) {
	r.nextID++
	donation.ID = r.nextID
	r.items = append(r.items, donation)
	return donation, nil
}

func (r *fakeDonationRepo) List(_ context.Context, offset, limit int) ([]types.Donation, int, error) {
	total := len(r.items)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return r.items[offset:end], total, nil
}

type fakeENewspaperRepo struct {
	nextID int
	items  map[int]types.ENewspaper
}

func newFakeENewspaperRepo() *fakeENewspaperRepo {
	return &fakeENewspaperRepo{nextID: 1, items: map[int]types.ENewspaper{}}
}

func (r *fakeENewspaperRepo) List(_ context.Context) ([]types.ENewspaper, error) {
	var all []types.ENewspaper
	for _, item := range r.items {
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PublishDate.After(all[j].PublishDate) })
	return all, nil
}

func (r *fakeENewspaperRepo) ListPublished(_ context.Context, now time.Time, day time.Time) ([]types.ENewspaper, error) {
	var all []types.ENewspaper
	for _, item := range r.items {
		if day.IsZero() {
			if !item.PublishDate.After(now) {
				all = append(all, item)
			}
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		if !item.PublishDate.Before(start) && item.PublishDate.Before(end) {
			all = append(all, item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PublishDate.After(all[j].PublishDate) })
	return all, nil
}

func (r *fakeENewspaperRepo) Get(_ context.Context, id int) (types.ENewspaper, error) {
	item, ok := r.items[id]
	if !ok {
		return types.ENewspaper{}, store.ErrNotFound
	}
	return item, nil
}

func (r *fakeENewspaperRepo) Create(_ context.Context, item types.ENewspaper) (types.ENewspaper, error) {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeENewspaperRepo) UpdatePublishDate(_ context.Context, id int, publishDate time.Time) (types.ENewspaper, error) {
	item, ok := r.items[id]
	if !ok {
		return types.ENewspaper{}, store.ErrNotFound
	}
	item.PublishDate = publishDate
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return item, nil
}

func (r *fakeENewspaperRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeObjectStorage struct {
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) EnsureBucket(context.Context) error { return nil }

func (f *fakeObjectStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStorage) PublicURL(key string) string {
	return "https://cdn.test/media/" + key
}

func (f *fakeObjectStorage) Bucket() string { return "test" }

// testEnv wires the full router against in-memory fakes.
type testEnv struct {
	router      *chi.Mux
	tokens      *auth.TokenService
	userRepo    *fakeUserRepo
	newsRepo    *fakeNewsRepo
	storyRepo   *fakeStoryRepo
	galleryRepo *fakeGalleryRepo
	donations   *fakeDonationRepo
	enewsRepo   *fakeENewspaperRepo
	objects     *fakeObjectStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		tokens:      auth.NewTokenService("test-secret"),
		userRepo:    newFakeUserRepo(),
		newsRepo:    newFakeNewsRepo(),
		storyRepo:   &fakeStoryRepo{},
		galleryRepo: &fakeGalleryRepo{},
		donations:   &fakeDonationRepo{},
		enewsRepo:   newFakeENewspaperRepo(),
		objects:     newFakeObjectStorage(),
	}

	mediaStorage := storage.NewStorage(env.objects)
	userService := services.NewUserService(env.userRepo, env.tokens, nil, testBaseURL)
	newsService := services.NewNewsService(env.newsRepo, mediaStorage)
	ngoService := services.NewNGOService(env.storyRepo, env.galleryRepo, env.donations, mediaStorage, nil)
	enewspaperService := services.NewENewspaperService(env.enewsRepo, mediaStorage)

	mw := NewMiddleware(userService, env.tokens)

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService)
	})
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, userService, mw)
	})
	router.Route("/news", func(r chi.Router) {
		NewsRouter(r, newsService, mw)
	})
	router.Route("/ngo", func(r chi.Router) {
		NGORouter(r, ngoService, mw)
	})
	router.Route("/enewspapers", func(r chi.Router) {
		ENewspaperRouter(r, enewspaperService, mw)
	})

	env.router = router
	return env
}

// seedUser inserts an account directly and returns it with a valid
// session token.
func (e *testEnv) seedUser(t *testing.T, role types.Role, status types.Status, email string) (types.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := e.userRepo.Create(context.Background(), types.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	})
	require.NoError(t, err)

	token, err := e.tokens.IssueSessionToken(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return e.do(t, method, path, token, body, "application/json")
}

// multipartBody builds a multipart form with text fields plus a single
// file field.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, data []byte) (io.Reader, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	fw, err := w.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&value))
	return value
}
