// storage.go defines the persistence contract shared by the in-memory
// store and the sqlite store.
package main

// Storage owns all portfolio records. List reads never fail; they return an
// empty slice when nothing matches. Lookups report absence with a bool.
// Delete returns false when the id was already gone, so a second delete of
// the same id is a not-found rather than an error.
type Storage interface {
	GetUser(id int) (*User, bool)
	GetUserByUsername(username string) (*User, bool)
	CreateUser(username, password string) *User

	// Profile is a singleton: UpdateProfile creates it when absent.
	GetProfile() (*Profile, bool)
	UpdateProfile(in ProfileInput) *Profile

	GetSkills() []Skill
	GetSkill(id int) (*Skill, bool)
	CreateSkill(in SkillInput) *Skill
	UpdateSkill(id int, in SkillInput) (*Skill, bool)
	DeleteSkill(id int) bool

	GetExperiences() []Experience
	GetExperience(id int) (*Experience, bool)
	CreateExperience(in ExperienceInput) *Experience
	UpdateExperience(id int, in ExperienceInput) (*Experience, bool)
	DeleteExperience(id int) bool

	GetProjects() []Project
	GetFeaturedProjects() []Project
	GetProject(id int) (*Project, bool)
	CreateProject(in ProjectInput) *Project
	UpdateProject(id int, in ProjectInput) (*Project, bool)
	DeleteProject(id int) bool

	GetBlogPosts() []BlogPost
	GetPublishedBlogPosts() []BlogPost
	GetBlogPost(id int) (*BlogPost, bool)
	GetBlogPostBySlug(slug string) (*BlogPost, bool)
	CreateBlogPost(in BlogPostInput) *BlogPost
	UpdateBlogPost(id int, in BlogPostInput) (*BlogPost, bool)
	DeleteBlogPost(id int) bool

	GetContactMessages() []ContactMessage
	GetContactMessage(id int) (*ContactMessage, bool)
	CreateContactMessage(in ContactMessageInput) *ContactMessage
	MarkContactMessageRead(id int) bool
	DeleteContactMessage(id int) bool
}
