// handlers.go this is our HTTP layer: one handler per route, each a narrow
// adapter from verb+path to one Storage or AuthService call.
package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
)

type Server struct {
	store    Storage
	auth     *AuthService
	cache    *cache.Cache
	validate *validator.Validate
}

func NewServer(store Storage, auth *AuthService) *Server {
	return &Server{
		store:    store,
		auth:     auth,
		cache:    cache.New(5*time.Minute, 10*time.Minute),
		validate: validator.New(),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/verify", s.requireAuth(s.verifySession))

	// Public
	mux.HandleFunc("GET /api/profile", s.getProfile)
	mux.HandleFunc("GET /api/skills", s.getSkills)
	mux.HandleFunc("GET /api/experiences", s.getExperiences)
	mux.HandleFunc("GET /api/projects", s.getProjects)
	mux.HandleFunc("GET /api/projects/{id}", s.getProject)
	mux.HandleFunc("GET /api/blog", s.getPublishedBlogPosts)
	mux.HandleFunc("GET /api/blog/{slug}", s.getBlogPostBySlug)
	mux.HandleFunc("POST /api/contact", s.createContactMessage)

	// Admin
	mux.HandleFunc("PUT /api/admin/profile", s.requireAuth(s.updateProfile))

	mux.HandleFunc("POST /api/admin/skills", s.requireAuth(s.createSkill))
	mux.HandleFunc("PUT /api/admin/skills/{id}", s.requireAuth(s.updateSkill))
	mux.HandleFunc("DELETE /api/admin/skills/{id}", s.requireAuth(s.deleteSkill))

	mux.HandleFunc("POST /api/admin/experiences", s.requireAuth(s.createExperience))
	mux.HandleFunc("PUT /api/admin/experiences/{id}", s.requireAuth(s.updateExperience))
	mux.HandleFunc("DELETE /api/admin/experiences/{id}", s.requireAuth(s.deleteExperience))

	mux.HandleFunc("GET /api/admin/projects", s.requireAuth(s.listProjects))
	mux.HandleFunc("POST /api/admin/projects", s.requireAuth(s.createProject))
	mux.HandleFunc("PUT /api/admin/projects/{id}", s.requireAuth(s.updateProject))
	mux.HandleFunc("DELETE /api/admin/projects/{id}", s.requireAuth(s.deleteProject))

	mux.HandleFunc("GET /api/admin/blog", s.requireAuth(s.listBlogPosts))
	mux.HandleFunc("POST /api/admin/blog", s.requireAuth(s.createBlogPost))
	mux.HandleFunc("PUT /api/admin/blog/{id}", s.requireAuth(s.updateBlogPost))
	mux.HandleFunc("DELETE /api/admin/blog/{id}", s.requireAuth(s.deleteBlogPost))

	mux.HandleFunc("GET /api/admin/contacts", s.requireAuth(s.listContactMessages))
	mux.HandleFunc("PUT /api/admin/contacts/{id}/read", s.requireAuth(s.markContactMessageRead))
	mux.HandleFunc("DELETE /api/admin/contacts/{id}", s.requireAuth(s.deleteContactMessage))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

// cached serves public list reads out of the response cache; every mutation
// flushes the whole cache so the frontend's refetch-on-mutation sees fresh
// data.
func (s *Server) cached(key string, fetch func() interface{}) interface{} {
	if data, found := s.cache.Get(key); found {
		return data
	}
	data := fetch()
	s.cache.Set(key, data, cache.DefaultExpiration)
	return data
}

func (s *Server) flushCache() {
	s.cache.Flush()
}

// Auth handlers

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid login data")
		return
	}

	token, user, err := s.auth.Login(body.Username, body.Password)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  map[string]interface{}{"id": user.ID, "username": user.Username},
	})
}

func (s *Server) verifySession(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  map[string]interface{}{"id": claims.ID, "username": claims.Username},
	})
}

// Public handlers

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	data := s.cached("profile", func() interface{} {
		profile, ok := s.store.GetProfile()
		if !ok {
			return nil
		}
		return profile
	})
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getSkills(w http.ResponseWriter, r *http.Request) {
	data := s.cached("skills", func() interface{} { return s.store.GetSkills() })
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getExperiences(w http.ResponseWriter, r *http.Request) {
	data := s.cached("experiences", func() interface{} { return s.store.GetExperiences() })
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getProjects(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		data := s.cached("projects:featured", func() interface{} { return s.store.GetFeaturedProjects() })
		writeJSON(w, http.StatusOK, data)
		return
	}
	data := s.cached("projects", func() interface{} { return s.store.GetProjects() })
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}
	project, ok := s.store.GetProject(id)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) getPublishedBlogPosts(w http.ResponseWriter, r *http.Request) {
	data := s.cached("blog", func() interface{} { return s.store.GetPublishedBlogPosts() })
	writeJSON(w, http.StatusOK, data)
}

// blogPostView adds the rendered body alongside the raw markdown on the
// public single-post route.
type blogPostView struct {
	*BlogPost
	HTML string `json:"html"`
}

func (s *Server) getBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, ok := s.store.GetBlogPostBySlug(r.PathValue("slug"))
	if !ok || !post.Published {
		writeMessage(w, http.StatusNotFound, "Blog post not found")
		return
	}
	writeJSON(w, http.StatusOK, blogPostView{BlogPost: post, HTML: renderMarkdown(post.Content)})
}

func (s *Server) createContactMessage(w http.ResponseWriter, r *http.Request) {
	var in ContactMessageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid contact message data")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid contact message data")
		return
	}
	message := s.store.CreateContactMessage(in)
	s.flushCache()
	writeJSON(w, http.StatusCreated, message)
}

// Admin handlers

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid profile data")
		return
	}
	profile := s.store.UpdateProfile(in)
	s.flushCache()
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) createSkill(w http.ResponseWriter, r *http.Request) {
	var in SkillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid skill data")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid skill data")
		return
	}
	skill := s.store.CreateSkill(in)
	s.flushCache()
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) updateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Skill not found")
		return
	}
	var in SkillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid skill data")
		return
	}
	skill, ok := s.store.UpdateSkill(id, in)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Skill not found")
		return
	}
	s.flushCache()
	writeJSON(w, http.StatusOK, skill)
}

func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Skill not found")
		return
	}
	if !s.store.DeleteSkill(id) {
		writeMessage(w, http.StatusNotFound, "Skill not found")
		return
	}
	s.flushCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createExperience(w http.ResponseWriter, r *http.Request) {
	var in ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid experience data")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid experience data")
		return
	}
	experience := s.store.CreateExperience(in)
	s.flushCache()
	writeJSON(w, http.StatusCreated, experience)
}

func (s *Server) updateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Experience not found")
		return
	}
	var in ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid experience data")
		return
	}
	experience, ok := s.store.UpdateExperience(id, in)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Experience not found")
		return
	}
	s.flushCache()
	writeJSON(w, http.StatusOK, experience)
}

func (s *Server) deleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Experience not found")
		return
	}
	if !s.store.DeleteExperience(id) {
		writeMessage(w, http.StatusNotFound, "Experience not found")
		return
	}
	s.flushCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetProjects())
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid project data")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid project data")
		return
	}
	project := s.store.CreateProject(in)
	s.flushCache()
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}
	var in ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid project data")
		return
	}
	project, ok := s.store.UpdateProject(id, in)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}
	s.flushCache()
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}
	if !s.store.DeleteProject(id) {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}
	s.flushCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listBlogPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetBlogPosts())
}

func (s *Server) createBlogPost(w http.ResponseWriter, r *http.Request) {
	var in BlogPostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog post data")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog post data")
		return
	}
	post := s.store.CreateBlogPost(in)
	s.flushCache()
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) updateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Blog post not found")
		return
	}
	var in BlogPostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog post data")
		return
	}
	post, ok := s.store.UpdateBlogPost(id, in)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Blog post not found")
		return
	}
	s.flushCache()
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) deleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if !s.store.DeleteBlogPost(id) {
		writeMessage(w, http.StatusNotFound, "Blog post not found")
		return
	}
	s.flushCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listContactMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetContactMessages())
}

func (s *Server) markContactMessageRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Contact message not found")
		return
	}
	if !s.store.MarkContactMessageRead(id) {
		writeMessage(w, http.StatusNotFound, "Contact message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Contact message not found")
		return
	}
	if !s.store.DeleteContactMessage(id) {
		writeMessage(w, http.StatusNotFound, "Contact message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
