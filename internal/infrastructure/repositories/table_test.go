package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTable_InsertAndGet(t *testing.T) {
	table := NewServicesTable(setupTestDB(t))
	ctx := context.Background()

	svc := &domain.Service{
		Title:       "Web Development",
		Description: "Sites and apps",
		Features:    []string{"React", "Go APIs"},
		Price:       "From $500",
		Icon:        "Code",
	}
	require.NoError(t, table.Insert(ctx, svc))
	require.NotEmpty(t, svc.ID)
	assert.False(t, svc.CreatedAt.IsZero())

	got, err := table.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Web Development", got.Title)
	assert.Equal(t, []string{"React", "Go APIs"}, got.Features)
	assert.Equal(t, "services", table.Name())
}

func TestGormTable_SelectOrderingFiltersAndLimit(t *testing.T) {
	table := NewBlogsTable(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	posts := []*domain.Blog{
		{Title: "oldest", Slug: "oldest", Published: true, CreatedAt: base},
		{Title: "middle", Slug: "middle", Published: false, CreatedAt: base.Add(time.Hour)},
		{Title: "newest", Slug: "newest", Published: true, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, p := range posts {
		require.NoError(t, table.Insert(ctx, p))
	}

	tests := []struct {
		name     string
		query    domain.Query
		expected []string
	}{
		{
			name:     "created_at descending",
			query:    domain.Query{OrderBy: "created_at"},
			expected: []string{"newest", "middle", "oldest"},
		},
		{
			name:     "created_at ascending",
			query:    domain.Query{OrderBy: "created_at", Ascending: true},
			expected: []string{"oldest", "middle", "newest"},
		},
		{
			name:     "published only",
			query:    domain.Query{Filters: []domain.Filter{domain.Eq("published", true)}, OrderBy: "created_at"},
			expected: []string{"newest", "oldest"},
		},
		{
			name:     "limit",
			query:    domain.Query{OrderBy: "created_at", Limit: 1},
			expected: []string{"newest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := table.Select(ctx, tt.query)
			require.NoError(t, err)
			titles := make([]string, 0, len(rows))
			for _, r := range rows {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.expected, titles)
		})
	}
}

func TestGormTable_DuplicateSlugIsStructured(t *testing.T) {
	table := NewBlogsTable(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, table.Insert(ctx, &domain.Blog{Title: "First", Slug: "hello-world"}))
	err := table.Insert(ctx, &domain.Blog{Title: "Second", Slug: "hello-world"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, domain.KindUniqueViolation, domain.KindOf(err))

	var de *domain.DataError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "blogs", de.Table)
	assert.Equal(t, "insert", de.Op)
}

func TestGormTable_Update(t *testing.T) {
	table := NewHireRequestsTable(setupTestDB(t))
	ctx := context.Background()

	req := &domain.HireRequest{
		Type:    domain.HireRequestPersonal,
		Name:    "Ram",
		Email:   "ram@example.com",
		Contact: "9800000000",
		Reason:  "Need a website",
		Status:  domain.HireStatusPending,
	}
	require.NoError(t, table.Insert(ctx, req))

	t.Run("selected column only", func(t *testing.T) {
		err := table.Update(ctx, req.ID, &domain.HireRequest{Status: domain.HireStatusInProgress}, "status")
		require.NoError(t, err)

		got, err := table.Get(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.HireStatusInProgress, got.Status)
		assert.Equal(t, "Ram", got.Name, "unselected columns must survive")
		assert.True(t, got.CreatedAt.Equal(req.CreatedAt))
	})

	t.Run("missing row", func(t *testing.T) {
		err := table.Update(ctx, "missing", &domain.HireRequest{Status: domain.HireStatusRejected}, "status")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGormTable_UpdateAllColumnsWritesZeroValues(t *testing.T) {
	table := NewBlogsTable(setupTestDB(t))
	ctx := context.Background()

	post := &domain.Blog{Title: "Draft", Slug: "draft", Published: true, Excerpt: "x"}
	require.NoError(t, table.Insert(ctx, post))

	require.NoError(t, table.Update(ctx, post.ID, &domain.Blog{Title: "Draft v2", Slug: "draft"}))

	got, err := table.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", got.Title)
	assert.False(t, got.Published)
	assert.Empty(t, got.Excerpt)
}

func TestGormTable_DeleteAndCount(t *testing.T) {
	table := NewHireRequestsTable(setupTestDB(t))
	ctx := context.Background()

	statuses := []domain.HireRequestStatus{domain.HireStatusPending, domain.HireStatusPending, domain.HireStatusCompleted}
	var ids []string
	for _, s := range statuses {
		r := &domain.HireRequest{Type: domain.HireRequestPersonal, Name: "n", Reason: "r", Status: s}
		require.NoError(t, table.Insert(ctx, r))
		ids = append(ids, r.ID)
	}

	pending, err := table.Count(ctx, domain.Eq("status", "pending"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	require.NoError(t, table.Delete(ctx, ids[0]))
	total, err := table.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	assert.ErrorIs(t, table.Delete(ctx, ids[0]), domain.ErrNotFound)
}

func TestGormTable_GetNotFound(t *testing.T) {
	table := NewProjectsTable(setupTestDB(t))
	_, err := table.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	owner := &domain.Profile{UserID: "user-1", FullName: "Owner", Email: "owner@example.com", CreatedAt: base}
	require.NoError(t, repo.Create(ctx, owner))
	require.NoError(t, repo.Create(ctx, &domain.Profile{UserID: "user-2", Email: "a@example.com", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Profile{UserID: "user-2", Email: "b@example.com", CreatedAt: base.Add(2 * time.Hour)}))

	t.Run("single profile", func(t *testing.T) {
		p, err := repo.FindByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", p.Email)
	})

	t.Run("no profile", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, "user-3")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("several profiles for one user", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, "user-2")
		assert.ErrorIs(t, err, domain.ErrMultipleProfiles)
	})

	t.Run("first profile by creation", func(t *testing.T) {
		p, err := repo.FindFirst(ctx)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, p.ID)
	})

	t.Run("update", func(t *testing.T) {
		owner.Bio = "Full-stack developer"
		owner.Email = "new@example.com"
		require.NoError(t, repo.Update(ctx, owner))

		p, err := repo.FindByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Full-stack developer", p.Bio)
		assert.Equal(t, "new@example.com", p.Email)
	})
}
