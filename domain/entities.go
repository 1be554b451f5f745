package domain

import (
	"io"
	"time"
)

// User represents an account known to the auth platform
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	FullName       string
	EmailConfirmed bool
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserMetadata is the free-form data attached at sign-up
type UserMetadata struct {
	FullName string `json:"full_name"`
}

// Session is the authenticated identity and token material of a signed-in client
type Session struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expired reports whether the access token has run out at the given instant
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SameUser reports whether both sessions belong to the same user; nil never matches
func (s *Session) SameUser(other *Session) bool {
	if s == nil || other == nil {
		return false
	}
	return s.UserID == other.UserID
}

// Profile is the user-facing identity record keyed to a user
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is an offering shown on the services page
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Price       string    `json:"price"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is a portfolio entry
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	Category     string    `json:"category"`
	Year         string    `json:"year"`
	Status       string    `json:"status"`
	LiveURL      string    `json:"live_url"`
	GithubURL    string    `json:"github_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Blog is a blog post; only published posts are public
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Image     string    `json:"image"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HireRequestType distinguishes company and personal requests
type HireRequestType string

const (
	HireRequestCompany  HireRequestType = "company"
	HireRequestPersonal HireRequestType = "personal"
)

// Valid reports whether t is a known request type
func (t HireRequestType) Valid() bool {
	return t == HireRequestCompany || t == HireRequestPersonal
}

// HireRequestStatus is the admin-managed lifecycle of a request
type HireRequestStatus string

const (
	HireStatusPending    HireRequestStatus = "pending"
	HireStatusInProgress HireRequestStatus = "in-progress"
	HireStatusCompleted  HireRequestStatus = "completed"
	HireStatusRejected   HireRequestStatus = "rejected"
)

// Valid reports whether s is one of the four known statuses
func (s HireRequestStatus) Valid() bool {
	switch s {
	case HireStatusPending, HireStatusInProgress, HireStatusCompleted, HireStatusRejected:
		return true
	}
	return false
}

// HireRequest is a submission from the public hire form.
// Company requests use the Company* fields, personal requests use Name/Email/Contact.
type HireRequest struct {
	ID                string            `json:"id"`
	Type              HireRequestType   `json:"type"`
	CompanyName       string            `json:"company_name,omitempty"`
	CompanyEmail      string            `json:"company_email,omitempty"`
	CompanyContact    string            `json:"company_contact,omitempty"`
	CompanyLicenseURL string            `json:"company_license_url,omitempty"`
	Name              string            `json:"name,omitempty"`
	Email             string            `json:"email,omitempty"`
	Contact           string            `json:"contact,omitempty"`
	Reason            string            `json:"reason"`
	Status            HireRequestStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ClientName returns the requester's display name for either request type
func (h *HireRequest) ClientName() string {
	if h.Type == HireRequestCompany {
		return h.CompanyName
	}
	return h.Name
}

// ClientEmail returns the address replies should go to
func (h *HireRequest) ClientEmail() string {
	if h.Type == HireRequestCompany {
		return h.CompanyEmail
	}
	return h.Email
}

// ClientContact returns the requester's phone or other contact detail
func (h *HireRequest) ClientContact() string {
	if h.Type == HireRequestCompany {
		return h.CompanyContact
	}
	return h.Contact
}

// Upload is a file received from a form, before it reaches storage
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DashboardStats are the counters shown on the admin dashboard
type DashboardStats struct {
	Services        int64 `json:"services"`
	Projects        int64 `json:"projects"`
	Blogs           int64 `json:"blogs"`
	PendingRequests int64 `json:"pending_requests"`
}

// PublicStats are the counters shown on the public profile page
type PublicStats struct {
	Services       int64 `json:"services"`
	Projects       int64 `json:"projects"`
	PublishedBlogs int64 `json:"published_blogs"`
}

// PublicProfile is the profile page payload
type PublicProfile struct {
	Profile *Profile    `json:"profile"`
	Stats   PublicStats `json:"stats"`
}
