// database.go is the sqlite-backed Storage, used when DATABASE_PATH is set.
// It honors the same contract as MemStorage; read failures are logged and
// surface as empty results.
package main

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type SQLStorage struct {
	db *gorm.DB
}

func OpenSQLStorage(path string) (*SQLStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&User{}, &Profile{}, &Skill{}, &Experience{}, &Project{}, &BlogPost{}, &ContactMessage{}); err != nil {
		return nil, err
	}

	return &SQLStorage{db: db}, nil
}

func (s *SQLStorage) GetUser(id int) (*User, bool) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, false
	}
	return &u, true
}

func (s *SQLStorage) GetUserByUsername(username string) (*User, bool) {
	var u User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, false
	}
	return &u, true
}

func (s *SQLStorage) CreateUser(username, password string) *User {
	u := User{Username: username, Password: password}
	if err := s.db.Create(&u).Error; err != nil {
		log.Errorf("create user: %v", err)
	}
	return &u
}

func (s *SQLStorage) GetProfile() (*Profile, bool) {
	var p Profile
	if err := s.db.First(&p).Error; err != nil {
		return nil, false
	}
	return &p, true
}

func (s *SQLStorage) UpdateProfile(in ProfileInput) *Profile {
	var p Profile
	err := s.db.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		in.apply(&p)
		if err := s.db.Create(&p).Error; err != nil {
			log.Errorf("create profile: %v", err)
		}
		return &p
	}
	if err != nil {
		log.Errorf("load profile: %v", err)
		return &p
	}
	in.apply(&p)
	if err := s.db.Save(&p).Error; err != nil {
		log.Errorf("save profile: %v", err)
	}
	return &p
}

func (s *SQLStorage) GetSkills() []Skill {
	skills := make([]Skill, 0)
	if err := s.db.Order("display_order, id").Find(&skills).Error; err != nil {
		log.Errorf("list skills: %v", err)
	}
	return skills
}

func (s *SQLStorage) GetSkill(id int) (*Skill, bool) {
	var sk Skill
	if err := s.db.First(&sk, id).Error; err != nil {
		return nil, false
	}
	return &sk, true
}

func (s *SQLStorage) CreateSkill(in SkillInput) *Skill {
	var sk Skill
	in.apply(&sk)
	if err := s.db.Create(&sk).Error; err != nil {
		log.Errorf("create skill: %v", err)
	}
	return &sk
}

func (s *SQLStorage) UpdateSkill(id int, in SkillInput) (*Skill, bool) {
	var sk Skill
	if err := s.db.First(&sk, id).Error; err != nil {
		return nil, false
	}
	in.apply(&sk)
	if err := s.db.Save(&sk).Error; err != nil {
		log.Errorf("save skill: %v", err)
	}
	return &sk, true
}

func (s *SQLStorage) DeleteSkill(id int) bool {
	result := s.db.Delete(&Skill{}, id)
	if result.Error != nil {
		log.Errorf("delete skill: %v", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func (s *SQLStorage) GetExperiences() []Experience {
	experiences := make([]Experience, 0)
	if err := s.db.Order("display_order, id").Find(&experiences).Error; err != nil {
		log.Errorf("list experiences: %v", err)
	}
	return experiences
}

func (s *SQLStorage) GetExperience(id int) (*Experience, bool) {
	var e Experience
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, false
	}
	return &e, true
}

func (s *SQLStorage) CreateExperience(in ExperienceInput) *Experience {
	var e Experience
	in.apply(&e)
	if err := s.db.Create(&e).Error; err != nil {
		log.Errorf("create experience: %v", err)
	}
	return &e
}

func (s *SQLStorage) UpdateExperience(id int, in ExperienceInput) (*Experience, bool) {
	var e Experience
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, false
	}
	in.apply(&e)
	if err := s.db.Save(&e).Error; err != nil {
		log.Errorf("save experience: %v", err)
	}
	return &e, true
}

func (s *SQLStorage) DeleteExperience(id int) bool {
	result := s.db.Delete(&Experience{}, id)
	if result.Error != nil {
		log.Errorf("delete experience: %v", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func (s *SQLStorage) GetProjects() []Project {
	projects := make([]Project, 0)
	if err := s.db.Order("display_order, id").Find(&projects).Error; err != nil {
		log.Errorf("list projects: %v", err)
	}
	return projects
}

func (s *SQLStorage) GetFeaturedProjects() []Project {
	projects := make([]Project, 0)
	if err := s.db.Where("featured = ?", true).Order("display_order, id").Find(&projects).Error; err != nil {
		log.Errorf("list featured projects: %v", err)
	}
	return projects
}

func (s *SQLStorage) GetProject(id int) (*Project, bool) {
	var p Project
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, false
	}
	return &p, true
}

func (s *SQLStorage) CreateProject(in ProjectInput) *Project {
	p := Project{CreatedAt: time.Now()}
	in.apply(&p)
	if err := s.db.Create(&p).Error; err != nil {
		log.Errorf("create project: %v", err)
	}
	return &p
}

func (s *SQLStorage) UpdateProject(id int, in ProjectInput) (*Project, bool) {
	var p Project
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, false
	}
	in.apply(&p)
	if err := s.db.Save(&p).Error; err != nil {
		log.Errorf("save project: %v", err)
	}
	return &p, true
}

func (s *SQLStorage) DeleteProject(id int) bool {
	result := s.db.Delete(&Project{}, id)
	if result.Error != nil {
		log.Errorf("delete project: %v", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func (s *SQLStorage) GetBlogPosts() []BlogPost {
	posts := make([]BlogPost, 0)
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		log.Errorf("list blog posts: %v", err)
	}
	return posts
}

func (s *SQLStorage) GetPublishedBlogPosts() []BlogPost {
	posts := make([]BlogPost, 0)
	if err := s.db.Where("published = ?", true).Order("published_at desc").Find(&posts).Error; err != nil {
		log.Errorf("list published blog posts: %v", err)
	}
	return posts
}

func (s *SQLStorage) GetBlogPost(id int) (*BlogPost, bool) {
	var p BlogPost
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, false
	}
	return &p, true
}

func (s *SQLStorage) GetBlogPostBySlug(slug string) (*BlogPost, bool) {
	var p BlogPost
	if err := s.db.Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, false
	}
	return &p, true
}

func (s *SQLStorage) CreateBlogPost(in BlogPostInput) *BlogPost {
	now := time.Now()
	p := BlogPost{CreatedAt: now, UpdatedAt: now}
	in.apply(&p)
	if p.Published {
		p.PublishedAt = &now
	}
	if err := s.db.Create(&p).Error; err != nil {
		log.Errorf("create blog post: %v", err)
	}
	return &p
}

func (s *SQLStorage) UpdateBlogPost(id int, in BlogPostInput) (*BlogPost, bool) {
	var p BlogPost
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, false
	}
	wasPublished := p.Published
	in.apply(&p)
	p.UpdatedAt = time.Now()
	if p.Published && !wasPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	if err := s.db.Save(&p).Error; err != nil {
		log.Errorf("save blog post: %v", err)
	}
	return &p, true
}

func (s *SQLStorage) DeleteBlogPost(id int) bool {
	result := s.db.Delete(&BlogPost{}, id)
	if result.Error != nil {
		log.Errorf("delete blog post: %v", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func (s *SQLStorage) GetContactMessages() []ContactMessage {
	messages := make([]ContactMessage, 0)
	if err := s.db.Order("created_at desc").Find(&messages).Error; err != nil {
		log.Errorf("list contact messages: %v", err)
	}
	return messages
}

func (s *SQLStorage) GetContactMessage(id int) (*ContactMessage, bool) {
	var m ContactMessage
	if err := s.db.First(&m, id).Error; err != nil {
		return nil, false
	}
	return &m, true
}

func (s *SQLStorage) CreateContactMessage(in ContactMessageInput) *ContactMessage {
	m := ContactMessage{CreatedAt: time.Now()}
	in.apply(&m)
	if err := s.db.Create(&m).Error; err != nil {
		log.Errorf("create contact message: %v", err)
	}
	return &m
}

func (s *SQLStorage) MarkContactMessageRead(id int) bool {
	result := s.db.Model(&ContactMessage{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		log.Errorf("mark contact message read: %v", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func (s *SQLStorage) DeleteContactMessage(id int) bool {
	result := s.db.Delete(&ContactMessage{}, id)
	if result.Error != nil {
		log.Errorf("delete contact message: %v", result.Error)
		return false
	}
	return result.RowsAffected > 0
}
