// memory.go is the default Storage backend: a map per record kind behind a
// single mutex, with one id counter shared across every kind.
package main

import (
	"sort"
	"sync"
	"time"
)

type MemStorage struct {
	mu              sync.Mutex
	users           map[int]*User
	profiles        map[int]*Profile
	skills          map[int]*Skill
	experiences     map[int]*Experience
	projects        map[int]*Project
	blogPosts       map[int]*BlogPost
	contactMessages map[int]*ContactMessage
	currentID       int
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:           make(map[int]*User),
		profiles:        make(map[int]*Profile),
		skills:          make(map[int]*Skill),
		experiences:     make(map[int]*Experience),
		projects:        make(map[int]*Project),
		blogPosts:       make(map[int]*BlogPost),
		contactMessages: make(map[int]*ContactMessage),
	}
}

// nextID is shared across all kinds; ids are never reused, even after a
// delete. Callers must hold mu.
func (s *MemStorage) nextID() int {
	s.currentID++
	return s.currentID
}

func (s *MemStorage) GetUser(id int) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	out := *u
	return &out, true
}

func (s *MemStorage) GetUserByUsername(username string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			out := *u
			return &out, true
		}
	}
	return nil, false
}

func (s *MemStorage) CreateUser(username, password string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{ID: s.nextID(), Username: username, Password: password}
	s.users[u.ID] = u
	out := *u
	return &out
}

func (s *MemStorage) GetProfile() (*Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		out := *p
		return &out, true
	}
	return nil, false
}

func (s *MemStorage) UpdateProfile(in ProfileInput) *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		in.apply(p)
		out := *p
		return &out
	}
	p := &Profile{ID: s.nextID()}
	in.apply(p)
	s.profiles[p.ID] = p
	out := *p
	return &out
}

func (s *MemStorage) GetSkills() []Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, *sk)
	}
	sortByDisplayOrder(out, func(sk Skill) (int, int) { return sk.DisplayOrder, sk.ID })
	return out
}

func (s *MemStorage) GetSkill(id int) (*Skill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk, ok := s.skills[id]
	if !ok {
		return nil, false
	}
	out := *sk
	return &out, true
}

func (s *MemStorage) CreateSkill(in SkillInput) *Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk := &Skill{ID: s.nextID()}
	in.apply(sk)
	s.skills[sk.ID] = sk
	out := *sk
	return &out
}

func (s *MemStorage) UpdateSkill(id int, in SkillInput) (*Skill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk, ok := s.skills[id]
	if !ok {
		return nil, false
	}
	in.apply(sk)
	out := *sk
	return &out, true
}

func (s *MemStorage) DeleteSkill(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skills[id]; !ok {
		return false
	}
	delete(s.skills, id)
	return true
}

func (s *MemStorage) GetExperiences() []Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Experience, 0, len(s.experiences))
	for _, e := range s.experiences {
		out = append(out, *e)
	}
	sortByDisplayOrder(out, func(e Experience) (int, int) { return e.DisplayOrder, e.ID })
	return out
}

func (s *MemStorage) GetExperience(id int) (*Experience, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.experiences[id]
	if !ok {
		return nil, false
	}
	out := *e
	return &out, true
}

func (s *MemStorage) CreateExperience(in ExperienceInput) *Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &Experience{ID: s.nextID()}
	in.apply(e)
	s.experiences[e.ID] = e
	out := *e
	return &out
}

func (s *MemStorage) UpdateExperience(id int, in ExperienceInput) (*Experience, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.experiences[id]
	if !ok {
		return nil, false
	}
	in.apply(e)
	out := *e
	return &out, true
}

func (s *MemStorage) DeleteExperience(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.experiences[id]; !ok {
		return false
	}
	delete(s.experiences, id)
	return true
}

func (s *MemStorage) GetProjects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	sortByDisplayOrder(out, func(p Project) (int, int) { return p.DisplayOrder, p.ID })
	return out
}

func (s *MemStorage) GetFeaturedProjects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, 0)
	for _, p := range s.projects {
		if p.Featured {
			out = append(out, *p)
		}
	}
	sortByDisplayOrder(out, func(p Project) (int, int) { return p.DisplayOrder, p.ID })
	return out
}

func (s *MemStorage) GetProject(id int) (*Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, false
	}
	out := *p
	return &out, true
}

func (s *MemStorage) CreateProject(in ProjectInput) *Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &Project{ID: s.nextID(), CreatedAt: time.Now()}
	in.apply(p)
	s.projects[p.ID] = p
	out := *p
	return &out
}

func (s *MemStorage) UpdateProject(id int, in ProjectInput) (*Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, false
	}
	in.apply(p)
	out := *p
	return &out, true
}

func (s *MemStorage) DeleteProject(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false
	}
	delete(s.projects, id)
	return true
}

func (s *MemStorage) GetBlogPosts() []BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BlogPost, 0, len(s.blogPosts))
	for _, p := range s.blogPosts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemStorage) GetPublishedBlogPosts() []BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BlogPost, 0)
	for _, p := range s.blogPosts {
		if p.Published {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return publishedTime(out[i]).After(publishedTime(out[j]))
	})
	return out
}

func publishedTime(p BlogPost) time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

func (s *MemStorage) GetBlogPost(id int) (*BlogPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.blogPosts[id]
	if !ok {
		return nil, false
	}
	out := *p
	return &out, true
}

func (s *MemStorage) GetBlogPostBySlug(slug string) (*BlogPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.blogPosts {
		if p.Slug == slug {
			out := *p
			return &out, true
		}
	}
	return nil, false
}

func (s *MemStorage) CreateBlogPost(in BlogPostInput) *BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p := &BlogPost{ID: s.nextID(), CreatedAt: now, UpdatedAt: now}
	in.apply(p)
	if p.Published {
		p.PublishedAt = &now
	}
	s.blogPosts[p.ID] = p
	out := *p
	return &out
}

func (s *MemStorage) UpdateBlogPost(id int, in BlogPostInput) (*BlogPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.blogPosts[id]
	if !ok {
		return nil, false
	}
	wasPublished := p.Published
	in.apply(p)
	p.UpdatedAt = time.Now()
	// publishedAt is set once, on the first unpublished-to-published
	// transition; un-publishing never clears it.
	if p.Published && !wasPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	out := *p
	return &out, true
}

func (s *MemStorage) DeleteBlogPost(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogPosts[id]; !ok {
		return false
	}
	delete(s.blogPosts, id)
	return true
}

func (s *MemStorage) GetContactMessages() []ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ContactMessage, 0, len(s.contactMessages))
	for _, m := range s.contactMessages {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemStorage) GetContactMessage(id int) (*ContactMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.contactMessages[id]
	if !ok {
		return nil, false
	}
	out := *m
	return &out, true
}

func (s *MemStorage) CreateContactMessage(in ContactMessageInput) *ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &ContactMessage{ID: s.nextID(), CreatedAt: time.Now()}
	in.apply(m)
	s.contactMessages[m.ID] = m
	out := *m
	return &out
}

func (s *MemStorage) MarkContactMessageRead(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.contactMessages[id]
	if !ok {
		return false
	}
	m.Read = true
	return true
}

func (s *MemStorage) DeleteContactMessage(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contactMessages[id]; !ok {
		return false
	}
	delete(s.contactMessages, id)
	return true
}

// sortByDisplayOrder orders records by displayOrder ascending with insertion
// order (ascending id) breaking ties. Map iteration order is random, so the
// id sort first makes the stable displayOrder sort deterministic.
func sortByDisplayOrder[T any](items []T, key func(T) (order, id int)) {
	sort.Slice(items, func(i, j int) bool {
		_, a := key(items[i])
		_, b := key(items[j])
		return a < b
	})
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := key(items[i])
		b, _ := key(items[j])
		return a < b
	})
}
