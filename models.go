// models.go this is our database models and request payloads
package main

import "time"

// User is the admin credential. Exactly one is seeded at startup but the
// store does not prevent more.
type User struct {
	ID       int    `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"`
}

// Profile is a singleton: the store holds zero or one of these.
type Profile struct {
	ID           int     `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name"`
	Bio          string  `json:"bio"`
	FullBio      string  `json:"fullBio"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	ProfileImage *string `json:"profileImage"`
	GithubURL    *string `json:"githubUrl"`
	LinkedinURL  *string `json:"linkedinUrl"`
	TwitterURL   *string `json:"twitterUrl"`
	WebsiteURL   *string `json:"websiteUrl"`
}

type Skill struct {
	ID           int     `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Icon         *string `json:"icon"`
	Proficiency  int     `json:"proficiency"`
	DisplayOrder int     `json:"displayOrder" gorm:"default:0"`
}

type Experience struct {
	ID           int      `json:"id" gorm:"primaryKey"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	CompanyLogo  *string  `json:"companyLogo"`
	Technologies []string `json:"technologies" gorm:"serializer:json"`
	DisplayOrder int      `json:"displayOrder" gorm:"default:0"`
}

type Project struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	FullDescription *string   `json:"fullDescription"`
	Technologies    []string  `json:"technologies" gorm:"serializer:json"`
	CoverImage      *string   `json:"coverImage"`
	GithubURL       *string   `json:"githubUrl"`
	LiveURL         *string   `json:"liveUrl"`
	Featured        bool      `json:"featured" gorm:"default:false"`
	DisplayOrder    int       `json:"displayOrder" gorm:"default:0"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BlogPost struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug" gorm:"uniqueIndex"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  *string    `json:"coverImage"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	Published   bool       `json:"published" gorm:"default:false"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ContactMessage struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input payloads. Every field is a pointer so one shape serves both create
// (checked against the required tags) and partial update (only non-nil
// fields are applied over the existing record).

type ProfileInput struct {
	Name         *string `json:"name"`
	Bio          *string `json:"bio"`
	FullBio      *string `json:"fullBio"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	ProfileImage *string `json:"profileImage"`
	GithubURL    *string `json:"githubUrl"`
	LinkedinURL  *string `json:"linkedinUrl"`
	TwitterURL   *string `json:"twitterUrl"`
	WebsiteURL   *string `json:"websiteUrl"`
}

func (in ProfileInput) apply(p *Profile) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.FullBio != nil {
		p.FullBio = *in.FullBio
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = in.Phone
	}
	if in.Location != nil {
		p.Location = in.Location
	}
	if in.ProfileImage != nil {
		p.ProfileImage = in.ProfileImage
	}
	if in.GithubURL != nil {
		p.GithubURL = in.GithubURL
	}
	if in.LinkedinURL != nil {
		p.LinkedinURL = in.LinkedinURL
	}
	if in.TwitterURL != nil {
		p.TwitterURL = in.TwitterURL
	}
	if in.WebsiteURL != nil {
		p.WebsiteURL = in.WebsiteURL
	}
}

type SkillInput struct {
	Name         *string `json:"name" validate:"required,min=1"`
	Category     *string `json:"category" validate:"required,min=1"`
	Icon         *string `json:"icon"`
	Proficiency  *int    `json:"proficiency" validate:"required"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (in SkillInput) apply(s *Skill) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Icon != nil {
		s.Icon = in.Icon
	}
	if in.Proficiency != nil {
		s.Proficiency = *in.Proficiency
	}
	if in.DisplayOrder != nil {
		s.DisplayOrder = *in.DisplayOrder
	}
}

type ExperienceInput struct {
	Company      *string   `json:"company" validate:"required,min=1"`
	Role         *string   `json:"role" validate:"required,min=1"`
	Duration     *string   `json:"duration" validate:"required,min=1"`
	Description  *string   `json:"description" validate:"required,min=1"`
	CompanyLogo  *string   `json:"companyLogo"`
	Technologies *[]string `json:"technologies"`
	DisplayOrder *int      `json:"displayOrder"`
}

func (in ExperienceInput) apply(e *Experience) {
	if in.Company != nil {
		e.Company = *in.Company
	}
	if in.Role != nil {
		e.Role = *in.Role
	}
	if in.Duration != nil {
		e.Duration = *in.Duration
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.CompanyLogo != nil {
		e.CompanyLogo = in.CompanyLogo
	}
	if in.Technologies != nil {
		e.Technologies = *in.Technologies
	}
	if in.DisplayOrder != nil {
		e.DisplayOrder = *in.DisplayOrder
	}
}

type ProjectInput struct {
	Title           *string   `json:"title" validate:"required,min=1"`
	Description     *string   `json:"description" validate:"required,min=1"`
	FullDescription *string   `json:"fullDescription"`
	Technologies    *[]string `json:"technologies"`
	CoverImage      *string   `json:"coverImage"`
	GithubURL       *string   `json:"githubUrl"`
	LiveURL         *string   `json:"liveUrl"`
	Featured        *bool     `json:"featured"`
	DisplayOrder    *int      `json:"displayOrder"`
}

func (in ProjectInput) apply(p *Project) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.FullDescription != nil {
		p.FullDescription = in.FullDescription
	}
	if in.Technologies != nil {
		p.Technologies = *in.Technologies
	}
	if in.CoverImage != nil {
		p.CoverImage = in.CoverImage
	}
	if in.GithubURL != nil {
		p.GithubURL = in.GithubURL
	}
	if in.LiveURL != nil {
		p.LiveURL = in.LiveURL
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.DisplayOrder != nil {
		p.DisplayOrder = *in.DisplayOrder
	}
}

type BlogPostInput struct {
	Title      *string   `json:"title" validate:"required,min=1"`
	Slug       *string   `json:"slug" validate:"required,min=1"`
	Excerpt    *string   `json:"excerpt" validate:"required,min=1"`
	Content    *string   `json:"content" validate:"required,min=1"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
	Published  *bool     `json:"published"`
}

func (in BlogPostInput) apply(p *BlogPost) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.CoverImage != nil {
		p.CoverImage = in.CoverImage
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
}

type ContactMessageInput struct {
	FirstName *string `json:"firstName" validate:"required,min=1"`
	LastName  *string `json:"lastName" validate:"required,min=1"`
	Email     *string `json:"email" validate:"required,min=1"`
	Subject   *string `json:"subject" validate:"required,min=1"`
	Message   *string `json:"message" validate:"required,min=1"`
	Read      *bool   `json:"read"`
}

func (in ContactMessageInput) apply(m *ContactMessage) {
	if in.FirstName != nil {
		m.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		m.LastName = *in.LastName
	}
	if in.Email != nil {
		m.Email = *in.Email
	}
	if in.Subject != nil {
		m.Subject = *in.Subject
	}
	if in.Message != nil {
		m.Message = *in.Message
	}
	if in.Read != nil {
		m.Read = *in.Read
	}
}
