package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	store := NewMemStorage()
	store.CreateUser("admin", "admin123")
	auth := NewAuthService(store, []byte("test-secret"))
	server := NewServer(store, auth)
	return server, server.routes()
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doRequest(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginAndVerify(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Valid bool `json:"valid"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "admin", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	_, handler := newTestServer(t)
	rec := doRequest(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMalformedBody(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	_, handler := newTestServer(t)

	// no Authorization header
	rec := doRequest(t, handler, http.MethodGet, "/api/admin/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// malformed header
	req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
	req.Header.Set("Authorization", "Token abc")
	raw := httptest.NewRecorder()
	handler.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusUnauthorized, raw.Code)

	// invalid token
	rec = doRequest(t, handler, http.MethodGet, "/api/admin/projects", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSkillsListOrdering(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/skills", token, map[string]interface{}{
		"name": "React", "category": "frontend", "proficiency": 9, "displayOrder": 0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, handler, http.MethodPost, "/api/admin/skills", token, map[string]interface{}{
		"name": "Node.js", "category": "backend", "proficiency": 8, "displayOrder": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var skills []Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	require.Len(t, skills, 2)
	assert.Equal(t, "React", skills[0].Name)
	assert.Equal(t, "Node.js", skills[1].Name)
}

func TestCreateSkillRejectsIncompleteBody(t *testing.T) {
	server, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/skills", token, map[string]interface{}{
		"name": "React",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, server.store.GetSkills())
}

func TestContactValidation(t *testing.T) {
	server, handler := newTestServer(t)

	// empty email is a validation failure and nothing is stored
	rec := doRequest(t, handler, http.MethodPost, "/api/contact", "", map[string]interface{}{
		"firstName": "Ada", "lastName": "Lovelace", "email": "",
		"subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, server.store.GetContactMessages())

	rec = doRequest(t, handler, http.MethodPost, "/api/contact", "", map[string]interface{}{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
		"subject": "Hi", "message": "Hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var msg ContactMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.False(t, msg.Read)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestBlogPublishFlow(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/blog", token, map[string]interface{}{
		"title": "Hi", "slug": "hi", "excerpt": "e", "content": "c", "published": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Nil(t, created.PublishedAt)

	// unpublished posts are invisible on the public routes
	rec = doRequest(t, handler, http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Empty(t, posts)

	rec = doRequest(t, handler, http.MethodGet, "/api/blog/hi", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// publish
	rec = doRequest(t, handler, http.MethodPut, "/api/admin/blog/"+itoa(created.ID), token, map[string]interface{}{
		"published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var published BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &published))
	require.NotNil(t, published.PublishedAt)

	rec = doRequest(t, handler, http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hi", posts[0].Slug)

	rec = doRequest(t, handler, http.MethodGet, "/api/blog/hi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		BlogPost
		HTML string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Hi", view.Title)
	assert.Contains(t, view.HTML, "<p>c</p>")

	// a second publish leaves publishedAt unchanged
	rec = doRequest(t, handler, http.MethodPut, "/api/admin/blog/"+itoa(created.ID), token, map[string]interface{}{
		"published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var republished BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &republished))
	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, *published.PublishedAt, *republished.PublishedAt)
}

func TestProjectsFeaturedFilter(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/projects", token, map[string]interface{}{
		"title": "plain", "description": "d",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, handler, http.MethodPost, "/api/admin/projects", token, map[string]interface{}{
		"title": "starred", "description": "d", "featured": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/projects?featured=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var featured []Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, "starred", featured[0].Title)

	rec = doRequest(t, handler, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestProjectByID(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/projects", token, map[string]interface{}{
		"title": "p", "description": "d",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var project Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	rec = doRequest(t, handler, http.MethodGet, "/api/projects/"+itoa(project.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/projects/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSkillTwice(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/skills", token, map[string]interface{}{
		"name": "Go", "category": "backend", "proficiency": 9,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var skill Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skill))

	rec = doRequest(t, handler, http.MethodDelete, "/api/admin/skills/"+itoa(skill.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodDelete, "/api/admin/skills/"+itoa(skill.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactsAdminFlow(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/contact", "", map[string]interface{}{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
		"subject": "Hi", "message": "Hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var msg ContactMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))

	rec = doRequest(t, handler, http.MethodGet, "/api/admin/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []ContactMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.False(t, messages[0].Read)

	rec = doRequest(t, handler, http.MethodPut, "/api/admin/contacts/"+itoa(msg.ID)+"/read", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/admin/contacts", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Read)

	rec = doRequest(t, handler, http.MethodPut, "/api/admin/contacts/999/read", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, http.MethodDelete, "/api/admin/contacts/"+itoa(msg.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, handler, http.MethodDelete, "/api/admin/contacts/"+itoa(msg.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfilePartial(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPut, "/api/admin/profile", token, map[string]interface{}{
		"name": "Jane", "bio": "short", "email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, "/api/admin/profile", token, map[string]interface{}{
		"location": "Berlin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Jane", profile.Name)
	require.NotNil(t, profile.Location)
	assert.Equal(t, "Berlin", *profile.Location)
}

func TestMissingProfileIsNull(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestCacheFlushedOnMutation(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	// prime the cache with the empty list
	rec := doRequest(t, handler, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/api/admin/skills", token, map[string]interface{}{
		"name": "Go", "category": "backend", "proficiency": 9,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var skills []Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	assert.Len(t, skills, 1)
}

func TestContactCreationFlushesCache(t *testing.T) {
	server, handler := newTestServer(t)

	// prime the cache, then write past the handlers so the cached empty
	// list goes stale
	rec := doRequest(t, handler, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	server.store.CreateSkill(newSkillInput("Go", "backend", 9, 0))

	rec = doRequest(t, handler, http.MethodGet, "/api/skills", "", nil)
	var skills []Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	require.Empty(t, skills)

	rec = doRequest(t, handler, http.MethodPost, "/api/contact", "", map[string]interface{}{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
		"subject": "Hi", "message": "Hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/skills", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	assert.Len(t, skills, 1)
}

func TestAdminBlogListIncludesDrafts(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/admin/blog", token, map[string]interface{}{
		"title": "Draft", "slug": "draft", "excerpt": "e", "content": "c",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/admin/blog", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
