package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"smartblog/internal/auth"
	"smartblog/internal/handler"
	"smartblog/internal/model"
	"smartblog/internal/service"
)

// In-memory repositories standing in for the GORM-backed ones. They mimic
// the store-side behaviors the services rely on: generated ids, timestamps
// and the unique email index.

type memUserRepo struct {
	byEmail map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

type memPostRepo struct {
	byID map[uuid.UUID]*model.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{byID: map[uuid.UUID]*model.Post{}}
}

func (r *memPostRepo) Create(ctx context.Context, post *model.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	cp := *post
	r.byID[post.ID] = &cp
	return nil
}

func (r *memPostRepo) Update(ctx context.Context, post *model.Post) error {
	cp := *post
	r.byID[post.ID] = &cp
	return nil
}

func (r *memPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	for _, post := range r.byID {
		if post.UserID == userID {
			posts = append(posts, *post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].UpdatedAt.After(posts[j].UpdatedAt)
	})
	return posts, nil
}

type stubAIService struct{}

func (stubAIService) Generate(ctx context.Context, content, mode string) (string, error) {
	return "generated: " + mode, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()

	userRepo := newMemUserRepo()
	postRepo := newMemPostRepo()

	jwtService := auth.NewJWTService("test-secret", 30)
	resolver := auth.NewIdentityResolver(jwtService, userRepo)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, jwtService))
	postHandler := handler.NewPostHandler(service.NewPostService(postRepo))
	aiHandler := handler.NewAIHandler(stubAIService{})

	Register(e, resolver, authHandler, postHandler, aiHandler)
	return e
}

func doJSON(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.TokenResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestEndToEnd_PostLifecycle(t *testing.T) {
	e := newTestServer()

	// Register two users.
	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "b@x.com",
		"password": "password2",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate registration is a 400.
	rec = doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	tokenA := loginToken(t, e, "a@x.com", "password1")
	tokenB := loginToken(t, e, "b@x.com", "password2")

	// Create a draft.
	rec = doJSON(e, http.MethodPost, "/api/posts", tokenA, map[string]interface{}{
		"title": "Hi",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created model.Post
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Hi", created.Title)
	assert.Equal(t, model.StatusDraft, created.Status)

	postPath := fmt.Sprintf("/api/posts/%s", created.ID)

	// Publish it.
	rec = doJSON(e, http.MethodPost, postPath+"/publish", tokenA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var published model.Post
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &published))
	assert.Equal(t, model.StatusPublished, published.Status)

	// A different logged-in user is forbidden.
	rec = doJSON(e, http.MethodGet, postPath, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No token at all is unauthorized before any handler logic.
	rec = doJSON(e, http.MethodGet, postPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The owner still sees it.
	rec = doJSON(e, http.MethodGet, postPath, tokenA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Owner's list contains exactly the one post.
	rec = doJSON(e, http.MethodGet, "/api/posts", tokenA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var list handler.PostListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	// A missing post and a malformed id map to 404 and 400.
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/posts/%s", uuid.New()), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/posts/not-a-uuid", tokenA, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndToEnd_PartialUpdate(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "writer@x.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	token := loginToken(t, e, "writer@x.com", "password1")

	rec = doJSON(e, http.MethodPost, "/api/posts", token, map[string]interface{}{
		"title":        "Draft",
		"content_json": map[string]interface{}{"root": map[string]interface{}{"type": "root"}},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created model.Post
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	postPath := fmt.Sprintf("/api/posts/%s", created.ID)

	// Title-only update leaves content untouched.
	rec = doJSON(e, http.MethodPatch, postPath, token, map[string]interface{}{"title": "X"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated model.Post
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "X", updated.Title)
	assert.JSONEq(t, `{"root":{"type":"root"}}`, string(updated.Content))

	// Content set to the empty document is applied; title untouched.
	rec = doJSON(e, http.MethodPatch, postPath, token, map[string]interface{}{
		"content_json": map[string]interface{}{},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "X", updated.Title)
	assert.JSONEq(t, `{}`, string(updated.Content))
}

func TestEndToEnd_AIGenerate(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "ai@x.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	token := loginToken(t, e, "ai@x.com", "password1")

	// Requires authentication.
	rec = doJSON(e, http.MethodPost, "/api/ai/generate", "", map[string]string{
		"content": "text",
		"type":    "summary",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/ai/generate", token, map[string]string{
		"content": "text",
		"type":    "summary",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.GenerateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "generated: summary", resp.Result)

	// Unknown mode fails validation.
	rec = doJSON(e, http.MethodPost, "/api/ai/generate", token, map[string]string{
		"content": "text",
		"type":    "haiku",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndToEnd_InvalidCredentialsIndistinguishable(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "known@x.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	unknown := doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "unknown@x.com",
		"password": "password1",
	})
	wrongPass := doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "known@x.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}
