package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/internal/domain/models"
	"portfolio/internal/middleware"
	"portfolio/internal/storage"
	httprouters "portfolio/internal/transport/http"
	"portfolio/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMediaService struct{ mock.Mock }

func (m *MockMediaService) Resolve(ctx context.Context, section string, kind models.MediaKind) ([]models.MediaItem, error) {
	args := m.Called(ctx, section, kind)
	items, _ := args.Get(0).([]models.MediaItem)
	return items, args.Error(1)
}

func (m *MockMediaService) Carousels(ctx context.Context, section string) ([]models.CarouselGroup, error) {
	args := m.Called(ctx, section)
	groups, _ := args.Get(0).([]models.CarouselGroup)
	return groups, args.Error(1)
}

func (m *MockMediaService) Pairs(ctx context.Context, section string) ([]models.BeforeAfterPair, error) {
	args := m.Called(ctx, section)
	pairs, _ := args.Get(0).([]models.BeforeAfterPair)
	return pairs, args.Error(1)
}

func (m *MockMediaService) Upload(ctx context.Context, input dto.MediaUploadInput) (models.MediaItem, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.MediaItem), args.Error(1)
}

func (m *MockMediaService) UploadPair(ctx context.Context, input dto.PairUploadInput) (models.BeforeAfterPair, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.BeforeAfterPair), args.Error(1)
}

func (m *MockMediaService) Replace(ctx context.Context, id string, file *multipart.FileHeader) (models.MediaItem, error) {
	args := m.Called(ctx, id, file)
	return args.Get(0).(models.MediaItem), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMediaService) DeleteMany(ctx context.Context, ids []string) (dto.DeleteManyResult, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(dto.DeleteManyResult), args.Error(1)
}

func (m *MockMediaService) Reorder(ctx context.Context, updates []models.OrderUpdate) (int, error) {
	args := m.Called(ctx, updates)
	return args.Int(0), args.Error(1)
}

func (m *MockMediaService) Move(ctx context.Context, section string, groups [][]string) (int, error) {
	args := m.Called(ctx, section, groups)
	return args.Int(0), args.Error(1)
}

func (m *MockMediaService) Migrate(ctx context.Context, section string) (bool, error) {
	args := m.Called(ctx, section)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaService) MigrateAll(ctx context.Context) (map[string]bool, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(map[string]bool)
	return res, args.Error(1)
}

type MockContentService struct{ mock.Mock }

func (m *MockContentService) Get(ctx context.Context, section string) (models.ContentRecord, error) {
	args := m.Called(ctx, section)
	return args.Get(0).(models.ContentRecord), args.Error(1)
}

func (m *MockContentService) Save(ctx context.Context, section string, raw json.RawMessage) (models.ContentRecord, error) {
	args := m.Called(ctx, section, raw)
	return args.Get(0).(models.ContentRecord), args.Error(1)
}

func (m *MockContentService) All(ctx context.Context) (map[string]models.ContentRecord, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(map[string]models.ContentRecord)
	return res, args.Error(1)
}

func (m *MockContentService) Migrate(ctx context.Context, section string) (bool, error) {
	args := m.Called(ctx, section)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentService) UploadImage(ctx context.Context, section string, file *multipart.FileHeader) (models.ContentRecord, error) {
	args := m.Called(ctx, section, file)
	return args.Get(0).(models.ContentRecord), args.Error(1)
}

type MockContactService struct{ mock.Mock }

func (m *MockContactService) Submit(ctx context.Context, name, email, message string) (models.ContactMessage, error) {
	args := m.Called(ctx, name, email, message)
	return args.Get(0).(models.ContactMessage), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	args := m.Called(ctx)
	msgs, _ := args.Get(0).([]models.ContactMessage)
	return msgs, args.Error(1)
}

func (m *MockContactService) UnreadCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockContactService) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	args := m.Called(ctx, email, password)
	pair, _ := args.Get(0).(*models.TokenPair)
	return pair, args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*models.TokenPair)
	return pair, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, meta *models.TokenMeta) error {
	return m.Called(ctx, meta).Error(0)
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

type fixture struct {
	e       *echo.Echo
	r       *httprouters.Routers
	media   *MockMediaService
	content *MockContentService
	contact *MockContactService
	auth    *MockAuthService
}

func newFixture() *fixture {
	f := &fixture{
		e:       echo.New(),
		media:   new(MockMediaService),
		content: new(MockContentService),
		contact: new(MockContactService),
		auth:    new(MockAuthService),
	}
	f.e.Validator = &testValidator{v: validator.New()}
	f.e.Use(session.Middleware(sessions.NewCookieStore([]byte("test"))))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.r = httprouters.NewRouter(log, f.media, f.content, f.contact, f.auth)

	f.e.GET("/health", f.r.Health)
	f.e.GET("/api/v1/sections", f.r.ListSections)
	f.e.GET("/api/v1/sections/:section/media", f.r.SectionMedia)
	f.e.GET("/api/v1/sections/:section/pairs", f.r.SectionPairs)
	f.e.GET("/api/v1/content/:section", f.r.GetContent)
	f.e.POST("/api/v1/contact", f.r.SubmitContact)
	f.e.POST("/admin/login", f.r.Login)
	f.e.POST("/admin/refresh", f.r.Refresh)
	f.e.POST("/admin/logout", f.r.Logout)
	f.e.POST("/admin/logout-as", f.r.Logout, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextAdminKey, &models.TokenMeta{AdminID: "a1", SessionID: "s1"})
			return next(c)
		}
	})
	f.e.POST("/admin/media/:section", f.r.UploadMedia)
	f.e.POST("/admin/media/delete", f.r.DeleteManyMedia)
	f.e.DELETE("/admin/media/item/:id", f.r.DeleteMedia)
	f.e.PUT("/admin/media/:section/order", f.r.ReorderMedia)
	f.e.POST("/admin/media/:section/migrate", f.r.MigrateMedia)
	f.e.PUT("/admin/content/:section", f.r.SaveContent)
	f.e.POST("/admin/content/:section/image", f.r.UploadContentImage)
	f.e.GET("/admin/messages/unread", f.r.UnreadMessages)
	f.e.PATCH("/admin/messages/:id/read", f.r.MarkMessageRead)

	return f
}

func (f *fixture) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doJSON(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	return f.do(t, method, target, strings.NewReader(body), echo.MIMEApplicationJSON)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func multipartBody(t *testing.T, field, filename, contentType, content string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	if field != "" {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename)}
		h["Content-Type"] = []string{contentType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSectionMedia(t *testing.T) {
	f := newFixture()

	items := []models.MediaItem{{ID: "hardcoded-0", Section: "stories", IsFallback: true}}
	f.media.On("Resolve", mock.Anything, "stories", models.MediaKind("")).Return(items, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/sections/stories/media", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["is_fallback"])
	assert.Equal(t, "image", data["media_type"])
	assert.Len(t, data["items"], 1)
}

func TestSectionMedia_Errors(t *testing.T) {
	f := newFixture()

	f.media.On("Resolve", mock.Anything, "blog", models.MediaKind("")).
		Return(nil, fmt.Errorf("media_service.Resolve: %w", models.ErrUnknownSection))
	f.media.On("Resolve", mock.Anything, "reels", models.MediaKind("audio")).
		Return(nil, &models.ValidationError{Errors: []string{`unknown media type "audio"`}})

	rec := f.do(t, http.MethodGet, "/api/v1/sections/blog/media", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_section", decode(t, rec)["error"])

	rec = f.do(t, http.MethodGet, "/api/v1/sections/reels/media?kind=audio", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", decode(t, rec)["error"])
}

func TestSectionPairs_WrongGrouping(t *testing.T) {
	f := newFixture()

	f.media.On("Pairs", mock.Anything, "menus").Return(nil, models.ErrWrongGrouping)

	rec := f.do(t, http.MethodGet, "/api/v1/sections/menus/pairs", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSections(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/sections", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], len(models.Sections()))
}

func TestUploadMedia(t *testing.T) {
	f := newFixture()

	f.media.On("Upload", mock.Anything, mock.MatchedBy(func(in dto.MediaUploadInput) bool {
		return in.Section == "posts" && in.File.Filename == "a.png" && in.DisplayOrder != nil && *in.DisplayOrder == 3
	})).Return(models.MediaItem{ID: "m1", Section: "posts"}, nil)

	body, ct := multipartBody(t, "file", "a.png", "image/png", "png", map[string]string{"display_order": "3"})
	rec := f.do(t, http.MethodPost, "/admin/media/posts", body, ct)
	assert.Equal(t, http.StatusCreated, rec.Code)
	f.media.AssertExpectations(t)
}

func TestUploadMedia_Rejections(t *testing.T) {
	f := newFixture()

	f.media.On("Upload", mock.Anything, mock.MatchedBy(func(in dto.MediaUploadInput) bool {
		return in.Section == "reels"
	})).Return(models.MediaItem{}, fmt.Errorf("media_service.Upload: %w", models.ErrInvalidFileType))
	f.media.On("Upload", mock.Anything, mock.MatchedBy(func(in dto.MediaUploadInput) bool {
		return in.Section == "posts"
	})).Return(models.MediaItem{}, storage.ErrFileTooLarge)

	body, ct := multipartBody(t, "file", "a.jpg", "image/jpeg", "x", nil)
	rec := f.do(t, http.MethodPost, "/admin/media/reels", body, ct)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	body, ct = multipartBody(t, "file", "a.jpg", "image/jpeg", "x", nil)
	rec = f.do(t, http.MethodPost, "/admin/media/posts", body, ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	body, ct = multipartBody(t, "", "", "", "", map[string]string{"group_key": "x"})
	rec = f.do(t, http.MethodPost, "/admin/media/posts", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "file", "a.jpg", "image/jpeg", "x", map[string]string{"display_order": "-1"})
	rec = f.do(t, http.MethodPost, "/admin/media/posts", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.media.AssertNumberOfCalls(t, "Upload", 2)
}

func TestDeleteMedia_Fallback(t *testing.T) {
	f := newFixture()

	f.media.On("Delete", mock.Anything, "hardcoded-1").Return(models.ErrFallbackItem)
	f.media.On("Delete", mock.Anything, "gone").Return(nil)

	rec := f.do(t, http.MethodDelete, "/admin/media/item/hardcoded-1", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodDelete, "/admin/media/item/gone", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReorderMedia(t *testing.T) {
	f := newFixture()

	f.media.On("Reorder", mock.Anything, []models.OrderUpdate{{ID: "a", DisplayOrder: 0}, {ID: "b", DisplayOrder: 1}}).
		Return(1, &models.BatchError{Op: "reorder", Succeeded: 1, Total: 2, Err: errors.New("b: timeout")})

	rec := f.doJSON(t, http.MethodPut, "/admin/media/posts/order", `{"updates":[{"id":"a","display_order":0},{"id":"b","display_order":1}]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	out := decode(t, rec)
	assert.Equal(t, "batch_failed", out["error"])
	assert.Equal(t, float64(1), out["succeeded"])
	assert.Equal(t, float64(2), out["total"])
}

func TestReorderMedia_InvalidBody(t *testing.T) {
	f := newFixture()

	rec := f.doJSON(t, http.MethodPut, "/admin/media/posts/order", `{"updates":[{"id":"a","display_order":-4}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.doJSON(t, http.MethodPut, "/admin/media/posts/order", `{"updates":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.media.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything)
}

func TestDeleteManyMedia(t *testing.T) {
	f := newFixture()

	f.media.On("DeleteMany", mock.Anything, []string{"a", "b"}).Return(dto.DeleteManyResult{Requested: 2, Deleted: 2}, nil)

	rec := f.doJSON(t, http.MethodPost, "/admin/media/delete", `{"ids":["a","b"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["deleted"])

	rec = f.doJSON(t, http.MethodPost, "/admin/media/delete", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMigrateMedia(t *testing.T) {
	f := newFixture()

	f.media.On("Migrate", mock.Anything, "menus").Return(true, nil)

	rec := f.do(t, http.MethodPost, "/admin/media/menus/migrate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["migrated"])
	assert.Equal(t, "menus", data["section_name"])
}

func TestGetContent(t *testing.T) {
	f := newFixture()

	f.content.On("Get", mock.Anything, "about").Return(models.ContentRecord{
		Section:    "about",
		Variant:    models.ContentAbout,
		About:      &models.AboutContent{Title: "Hi"},
		IsFallback: true,
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/content/about", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["is_fallback"])
	assert.Equal(t, "Hi", data["content"].(map[string]any)["title"])
}

func TestSaveContent_Validation(t *testing.T) {
	f := newFixture()

	f.content.On("Save", mock.Anything, "about", mock.Anything).
		Return(models.ContentRecord{}, &models.ValidationError{Errors: []string{"title is required"}})

	rec := f.doJSON(t, http.MethodPut, "/admin/content/about", `{"content":{"subtitle":"x"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", decode(t, rec)["details"])

	rec = f.doJSON(t, http.MethodPut, "/admin/content/about", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.content.AssertNumberOfCalls(t, "Save", 1)
}

func TestUploadContentImage(t *testing.T) {
	f := newFixture()

	const url = "http://test.local/uploads/about/1-me.jpg"
	f.content.On("UploadImage", mock.Anything, "about", mock.MatchedBy(func(fh *multipart.FileHeader) bool {
		return fh.Filename == "me.jpg"
	})).Return(models.ContentRecord{
		Section: "about",
		Variant: models.ContentAbout,
		About:   &models.AboutContent{Title: "Hi", Image: url},
	}, nil)
	f.content.On("UploadImage", mock.Anything, "contact", mock.Anything).
		Return(models.ContentRecord{}, &models.ValidationError{Errors: []string{`section "contact" has no content image`}})

	body, ct := multipartBody(t, "file", "me.jpg", "image/jpeg", "jpg", nil)
	rec := f.do(t, http.MethodPost, "/admin/content/about/image", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, url, data["content"].(map[string]any)["image"])

	body, ct = multipartBody(t, "file", "me.jpg", "image/jpeg", "jpg", nil)
	rec = f.do(t, http.MethodPost, "/admin/content/contact/image", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "", "", "", "", nil)
	rec = f.do(t, http.MethodPost, "/admin/content/about/image", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.content.AssertNumberOfCalls(t, "UploadImage", 2)
}

func TestSubmitContact(t *testing.T) {
	f := newFixture()

	f.contact.On("Submit", mock.Anything, "Ann", "ann@example.com", "Hello").
		Return(models.ContactMessage{ID: "c1", Name: "Ann"}, nil)

	rec := f.doJSON(t, http.MethodPost, "/api/v1/contact", `{"name":"Ann","email":"ann@example.com","message":"Hello"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.doJSON(t, http.MethodPost, "/api/v1/contact", `{"name":"Ann","email":"nope","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.doJSON(t, http.MethodPost, "/api/v1/contact", `{"email":"ann@example.com","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.contact.AssertNumberOfCalls(t, "Submit", 1)
}

func TestMessages(t *testing.T) {
	f := newFixture()

	f.contact.On("UnreadCount", mock.Anything).Return(4, nil)
	f.contact.On("MarkRead", mock.Anything, "m1").Return(nil)

	rec := f.do(t, http.MethodGet, "/admin/messages/unread", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), decode(t, rec)["data"].(map[string]any)["unread"])

	rec = f.do(t, http.MethodPatch, "/admin/messages/m1/read", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture()

	pair := &models.TokenPair{SessionID: "s1", AccessToken: "access", RefreshToken: "refresh"}
	f.auth.On("Login", mock.Anything, "admin@example.com", "correct horse").Return(pair, nil)
	f.auth.On("Login", mock.Anything, "admin@example.com", "wrong password").
		Return(nil, fmt.Errorf("auth.Login: %w", models.ErrInvalidCredentials))

	rec := f.doJSON(t, http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "access", decode(t, rec)["data"].(map[string]any)["access_token"])
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "admin_session=")

	rec = f.doJSON(t, http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"wrong password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication_failed", decode(t, rec)["error"])

	rec = f.doJSON(t, http.MethodPost, "/admin/login", `{"email":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefresh_FromCookie(t *testing.T) {
	f := newFixture()

	first := &models.TokenPair{SessionID: "s1", AccessToken: "access", RefreshToken: "refresh-1"}
	second := &models.TokenPair{SessionID: "s1", AccessToken: "access-2", RefreshToken: "refresh-2"}
	f.auth.On("Login", mock.Anything, "admin@example.com", "correct horse").Return(first, nil)
	f.auth.On("Refresh", mock.Anything, "refresh-1").Return(second, nil)

	rec := f.doJSON(t, http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	refreshed := httptest.NewRecorder()
	f.e.ServeHTTP(refreshed, req)

	require.Equal(t, http.StatusOK, refreshed.Code)
	assert.Equal(t, "access-2", decode(t, refreshed)["data"].(map[string]any)["access_token"])

	rec = f.do(t, http.MethodPost, "/admin/refresh", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_ExpiredSession(t *testing.T) {
	f := newFixture()

	f.auth.On("Refresh", mock.Anything, "stale").Return(nil, fmt.Errorf("auth.Refresh: %w", models.ErrSessionExpired))

	rec := f.doJSON(t, http.MethodPost, "/admin/refresh", `{"refresh_token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	f := newFixture()

	f.auth.On("Logout", mock.Anything, &models.TokenMeta{AdminID: "a1", SessionID: "s1"}).Return(nil)

	rec := f.do(t, http.MethodPost, "/admin/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/admin/logout-as", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	f.auth.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.r.WithHealthCheck("postgres", healthFunc(func(context.Context) error { return errors.New("connection refused") }))

	rec = f.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decode(t, rec)["details"], "postgres")
}
