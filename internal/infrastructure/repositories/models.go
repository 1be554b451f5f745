package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"gorm.io/gorm"
)

// Base carries the uuid key and timestamps every table shares
type Base struct {
	ID        string    `gorm:"primaryKey;size:36"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeCreate assigns a uuid when the caller did not
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b *Base) setKey(id string) { b.ID = id }

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	Base
	Email          string `gorm:"uniqueIndex;size:255"`
	PasswordHash   string `gorm:"column:password"`
	FullName       string `gorm:"size:255"`
	EmailConfirmed bool   `gorm:"index"`
	ConfirmedAt    *time.Time
}

func (DBUser) TableName() string { return "users" }

type DBProfile struct {
	Base
	UserID    string `gorm:"index;size:36"`
	FullName  string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	Bio       string `gorm:"type:text"`
	AvatarURL string `gorm:"size:1024"`
}

func (DBProfile) TableName() string { return "profiles" }

type DBService struct {
	Base
	Title       string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text"`
	Features    []string `gorm:"serializer:json;type:text"`
	Price       string   `gorm:"size:128"`
	Icon        string   `gorm:"size:64"`
}

func (DBService) TableName() string { return "services" }

type DBProject struct {
	Base
	Title        string   `gorm:"size:255;not null"`
	Description  string   `gorm:"type:text"`
	Image        string   `gorm:"size:1024"`
	Technologies []string `gorm:"serializer:json;type:text"`
	Category     string   `gorm:"size:128"`
	Year         string   `gorm:"size:8"`
	Status       string   `gorm:"size:64"`
	LiveURL      string   `gorm:"size:1024"`
	GithubURL    string   `gorm:"size:1024"`
}

func (DBProject) TableName() string { return "projects" }

type DBBlog struct {
	Base
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text"`
	Excerpt   string `gorm:"type:text"`
	Image     string `gorm:"size:1024"`
	Slug      string `gorm:"uniqueIndex;size:255"`
	Published bool   `gorm:"index"`
}

func (DBBlog) TableName() string { return "blogs" }

type DBHireRequest struct {
	Base
	Type              string `gorm:"size:16;index"`
	CompanyName       string `gorm:"size:255"`
	CompanyEmail      string `gorm:"size:255"`
	CompanyContact    string `gorm:"size:64"`
	CompanyLicenseURL string `gorm:"size:1024"`
	Name              string `gorm:"size:255"`
	Email             string `gorm:"size:255"`
	Contact           string `gorm:"size:64"`
	Reason            string `gorm:"type:text"`
	Status            string `gorm:"size:16;index"`
}

func (DBHireRequest) TableName() string { return "hire_requests" }

// Models lists every table for AutoMigrate
func Models() []any {
	return []any{
		&DBUser{},
		&DBProfile{},
		&DBService{},
		&DBProject{},
		&DBBlog{},
		&DBHireRequest{},
	}
}

func profileToDB(p *domain.Profile) *DBProfile {
	return &DBProfile{
		Base:      Base{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		UserID:    p.UserID,
		FullName:  p.FullName,
		Email:     p.Email,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
	}
}

func profileToDomain(m *DBProfile) *domain.Profile {
	return &domain.Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		FullName:  m.FullName,
		Email:     m.Email,
		Bio:       m.Bio,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func serviceToDB(s *domain.Service) *DBService {
	return &DBService{
		Base:        Base{ID: s.ID, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
		Title:       s.Title,
		Description: s.Description,
		Features:    s.Features,
		Price:       s.Price,
		Icon:        s.Icon,
	}
}

func serviceToDomain(m *DBService) *domain.Service {
	return &domain.Service{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Features:    m.Features,
		Price:       m.Price,
		Icon:        m.Icon,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func projectToDB(p *domain.Project) *DBProject {
	return &DBProject{
		Base:         Base{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Technologies: p.Technologies,
		Category:     p.Category,
		Year:         p.Year,
		Status:       p.Status,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
	}
}

func projectToDomain(m *DBProject) *domain.Project {
	return &domain.Project{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Image:        m.Image,
		Technologies: m.Technologies,
		Category:     m.Category,
		Year:         m.Year,
		Status:       m.Status,
		LiveURL:      m.LiveURL,
		GithubURL:    m.GithubURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func blogToDB(b *domain.Blog) *DBBlog {
	return &DBBlog{
		Base:      Base{ID: b.ID, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt},
		Title:     b.Title,
		Content:   b.Content,
		Excerpt:   b.Excerpt,
		Image:     b.Image,
		Slug:      b.Slug,
		Published: b.Published,
	}
}

func blogToDomain(m *DBBlog) *domain.Blog {
	return &domain.Blog{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Excerpt:   m.Excerpt,
		Image:     m.Image,
		Slug:      m.Slug,
		Published: m.Published,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func hireRequestToDB(h *domain.HireRequest) *DBHireRequest {
	return &DBHireRequest{
		Base:              Base{ID: h.ID, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt},
		Type:              string(h.Type),
		CompanyName:       h.CompanyName,
		CompanyEmail:      h.CompanyEmail,
		CompanyContact:    h.CompanyContact,
		CompanyLicenseURL: h.CompanyLicenseURL,
		Name:              h.Name,
		Email:             h.Email,
		Contact:           h.Contact,
		Reason:            h.Reason,
		Status:            string(h.Status),
	}
}

func hireRequestToDomain(m *DBHireRequest) *domain.HireRequest {
	return &domain.HireRequest{
		ID:                m.ID,
		Type:              domain.HireRequestType(m.Type),
		CompanyName:       m.CompanyName,
		CompanyEmail:      m.CompanyEmail,
		CompanyContact:    m.CompanyContact,
		CompanyLicenseURL: m.CompanyLicenseURL,
		Name:              m.Name,
		Email:             m.Email,
		Contact:           m.Contact,
		Reason:            m.Reason,
		Status:            domain.HireRequestStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
