package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// newest is the ordering every manager lists with
var newest = domain.Query{OrderBy: "created_at"}

// ServiceInput is the services form. Features arrive comma-separated.
type ServiceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Features    string `json:"features"`
	Price       string `json:"price"`
	Icon        string `json:"icon"`
}

// ProjectInput is the projects form. Technologies arrive comma-separated.
type ProjectInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Technologies string `json:"technologies"`
	Category     string `json:"category"`
	Year         string `json:"year"`
	Status       string `json:"status"`
	LiveURL      string `json:"live_url"`
	GithubURL    string `json:"github_url"`
}

// BlogInput is the blog form. An empty slug is derived from the title.
type BlogInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	Image     string `json:"image"`
	Slug      string `json:"slug"`
	Published bool   `json:"published"`
}

// SplitList parses a comma-separated form field, trimming entries and dropping empties
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses every other character run into a dash
func Slugify(title string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

func required(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return domain.Invalid(f[0], "is required")
		}
	}
	return nil
}

// catalog holds what every manager shares
type catalog struct {
	timeout time.Duration
	log     zerolog.Logger
}

func (c catalog) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return within(ctx, c.timeout)
}

// within bounds ctx by d; a zero budget means no extra deadline
func within(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// ServiceManager manages the services table
type ServiceManager struct {
	catalog
	table domain.Table[domain.Service]
}

// NewServiceManager creates a ServiceManager
func NewServiceManager(table domain.Table[domain.Service], timeout time.Duration, log zerolog.Logger) *ServiceManager {
	return &ServiceManager{
		catalog: catalog{timeout: timeout, log: log.With().Str("component", "services_manager").Logger()},
		table:   table,
	}
}

// List returns every service, newest first
func (m *ServiceManager) List(ctx context.Context) ([]domain.Service, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.table.Select(ctx, newest)
}

func (m *ServiceManager) build(in ServiceInput) (*domain.Service, error) {
	if err := required([2]string{"title", in.Title}, [2]string{"description", in.Description}); err != nil {
		return nil, err
	}
	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = "Code"
	}
	return &domain.Service{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Features:    SplitList(in.Features),
		Price:       strings.TrimSpace(in.Price),
		Icon:        icon,
	}, nil
}

// Create inserts a service
func (m *ServiceManager) Create(ctx context.Context, in ServiceInput) (*domain.Service, error) {
	svc, err := m.build(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := m.table.Insert(ctx, svc); err != nil {
		return nil, err
	}
	m.log.Info().Str("id", svc.ID).Msg("service created")
	return svc, nil
}

// Update replaces the editable fields of a service
func (m *ServiceManager) Update(ctx context.Context, id string, in ServiceInput) (*domain.Service, error) {
	svc, err := m.build(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := m.table.Update(ctx, id, svc, "title", "description", "features", "price", "icon"); err != nil {
		return nil, err
	}
	svc.ID = id
	return svc, nil
}

// Delete removes a service
func (m *ServiceManager) Delete(ctx context.Context, id string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.table.Delete(ctx, id)
}

// ProjectManager manages the projects table
type ProjectManager struct {
	catalog
	table domain.Table[domain.Project]
	now   func() time.Time
}

// NewProjectManager creates a ProjectManager
func NewProjectManager(table domain.Table[domain.Project], timeout time.Duration, log zerolog.Logger) *ProjectManager {
	return &ProjectManager{
		catalog: catalog{timeout: timeout, log: log.With().Str("component", "projects_manager").Logger()},
		table:   table,
		now:     time.Now,
	}
}

// List returns every project, newest first
func (m *ProjectManager) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.table.Select(ctx, newest)
}

func (m *ProjectManager) build(in ProjectInput) (*domain.Project, error) {
	if err := required([2]string{"title", in.Title}, [2]string{"description", in.Description}); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "Completed"
	}
	year := strings.TrimSpace(in.Year)
	if year == "" {
		year = strconv.Itoa(m.now().Year())
	}
	return &domain.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Image:        strings.TrimSpace(in.Image),
		Technologies: SplitList(in.Technologies),
		Category:     strings.TrimSpace(in.Category),
		Year:         year,
		Status:       status,
		LiveURL:      strings.TrimSpace(in.LiveURL),
		GithubURL:    strings.TrimSpace(in.GithubURL),
	}, nil
}

// Create inserts a project
func (m *ProjectManager) Create(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	p, err := m.build(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := m.table.Insert(ctx, p); err != nil {
		return nil, err
	}
	m.log.Info().Str("id", p.ID).Msg("project created")
	return p, nil
}

// Update replaces the editable fields of a project
func (m *ProjectManager) Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error) {
	p, err := m.build(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := m.table.Update(ctx, id, p, "title", "description", "image", "technologies",
		"category", "year", "status", "live_url", "github_url"); err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Delete removes a project
func (m *ProjectManager) Delete(ctx context.Context, id string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.table.Delete(ctx, id)
}

// BlogManager manages the blogs table
type BlogManager struct {
	catalog
	table domain.Table[domain.Blog]
}

// NewBlogManager creates a BlogManager
func NewBlogManager(table domain.Table[domain.Blog], timeout time.Duration, log zerolog.Logger) *BlogManager {
	return &BlogManager{
		catalog: catalog{timeout: timeout, log: log.With().Str("component", "blogs_manager").Logger()},
		table:   table,
	}
}

// List returns every post including drafts, newest first
func (m *BlogManager) List(ctx context.Context) ([]domain.Blog, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.table.Select(ctx, newest)
}

// Published returns published posts, newest first
func (m *BlogManager) Published(ctx context.Context) ([]domain.Blog, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	q := newest
	q.Filters = []domain.Filter{domain.Eq("published", true)}
	return m.table.Select(ctx, q)
}

// BySlug returns the published post with the given slug
func (m *BlogManager) BySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	rows, err := m.table.Select(ctx, domain.Query{
		Filters: []domain.Filter{domain.Eq("slug", slug), domain.Eq("published", true)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.DataError{Kind: domain.KindNotFound, Table: m.table.Name(), Op: "select", Err: domain.ErrNotFound}
	}
	return &rows[0], nil
}

func (m *BlogManager) build(in BlogInput) (*domain.Blog, error) {
	if err := required([2]string{"title", in.Title}, [2]string{"content", in.Content}); err != nil {
		return nil, err
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}
	if slug == "" {
		return nil, domain.Invalid("slug", "could not be derived from the title")
	}
	return &domain.Blog{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Excerpt:   strings.TrimSpace(in.Excerpt),
		Image:     strings.TrimSpace(in.Image),
		Slug:      slug,
		Published: in.Published,
	}, nil
}

// Create inserts a post. A taken slug fails with domain.ErrDuplicate.
func (m *BlogManager) Create(ctx context.Context, in BlogInput) (*domain.Blog, error) {
	b, err := m.build(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := m.table.Insert(ctx, b); err != nil {
		return nil, err
	}
	m.log.Info().Str("id", b.ID).Str("slug", b.Slug).Msg("blog created")
	return b, nil
}

// Update replaces the editable fields of a post
func (m *BlogManager) Update(ctx context.Context, id string, in BlogInput) (*domain.Blog, error) {
	b, err := m.build(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := m.table.Update(ctx, id, b, "title", "content", "excerpt", "image", "slug", "published"); err != nil {
		return nil, err
	}
	b.ID = id
	return b, nil
}

// TogglePublished flips the published flag and returns the new value
func (m *BlogManager) TogglePublished(ctx context.Context, id string) (bool, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	b, err := m.table.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !b.Published
	if err := m.table.Update(ctx, id, &domain.Blog{Published: next}, "published"); err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes a post
func (m *BlogManager) Delete(ctx context.Context, id string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.table.Delete(ctx, id)
}
