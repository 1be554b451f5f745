package repositories

import (
	"context"
	"errors"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTable implements domain.Table on top of a GORM model M for entity D
type GormTable[D any, M any] struct {
	db       *gorm.DB
	name     string
	toModel  func(*D) *M
	toDomain func(*M) *D
}

// NewTable builds a table from the conversion pair of a model
func NewTable[D any, M any](db *gorm.DB, name string, toModel func(*D) *M, toDomain func(*M) *D) *GormTable[D, M] {
	return &GormTable[D, M]{db: db, name: name, toModel: toModel, toDomain: toDomain}
}

func NewServicesTable(db *gorm.DB) domain.Table[domain.Service] {
	return NewTable(db, "services", serviceToDB, serviceToDomain)
}

func NewProjectsTable(db *gorm.DB) domain.Table[domain.Project] {
	return NewTable(db, "projects", projectToDB, projectToDomain)
}

func NewBlogsTable(db *gorm.DB) domain.Table[domain.Blog] {
	return NewTable(db, "blogs", blogToDB, blogToDomain)
}

func NewHireRequestsTable(db *gorm.DB) domain.Table[domain.HireRequest] {
	return NewTable(db, "hire_requests", hireRequestToDB, hireRequestToDomain)
}

// Name implements domain.Table
func (t *GormTable[D, M]) Name() string { return t.name }

// Select implements domain.Table
func (t *GormTable[D, M]) Select(ctx context.Context, q domain.Query) ([]D, error) {
	tx := where(t.db.WithContext(ctx).Model(new(M)), q.Filters)
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: !q.Ascending})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []M
	if err := tx.Find(&rows).Error; err != nil {
		return nil, classify("select", t.name, err)
	}

	out := make([]D, 0, len(rows))
	for i := range rows {
		out = append(out, *t.toDomain(&rows[i]))
	}
	return out, nil
}

// Get implements domain.Table
func (t *GormTable[D, M]) Get(ctx context.Context, id string) (*D, error) {
	var m M
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, classify("get", t.name, err)
	}
	return t.toDomain(&m), nil
}

// Insert implements domain.Table; row receives the generated id and timestamps
func (t *GormTable[D, M]) Insert(ctx context.Context, row *D) error {
	m := t.toModel(row)
	if err := t.db.WithContext(ctx).Create(m).Error; err != nil {
		return classify("insert", t.name, err)
	}
	*row = *t.toDomain(m)
	return nil
}

// Update implements domain.Table
func (t *GormTable[D, M]) Update(ctx context.Context, id string, row *D, columns ...string) error {
	m := t.toModel(row)
	if k, ok := any(m).(interface{ setKey(string) }); ok {
		k.setKey(id)
	}

	tx := t.db.WithContext(ctx).Model(m).Where("id = ?", id)
	if len(columns) > 0 {
		tx = tx.Select(columns)
	} else {
		tx = tx.Select("*")
	}

	res := tx.Omit("id", "created_at").Updates(m)
	if res.Error != nil {
		return classify("update", t.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify("update", t.name, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete implements domain.Table
func (t *GormTable[D, M]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return classify("delete", t.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify("delete", t.name, gorm.ErrRecordNotFound)
	}
	return nil
}

// Count implements domain.Table
func (t *GormTable[D, M]) Count(ctx context.Context, filters ...domain.Filter) (int64, error) {
	var n int64
	if err := where(t.db.WithContext(ctx).Model(new(M)), filters).Count(&n).Error; err != nil {
		return 0, classify("count", t.name, err)
	}
	return n, nil
}

func where(tx *gorm.DB, filters []domain.Filter) *gorm.DB {
	for _, f := range filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return tx
}

// classify turns driver errors into domain.DataError kinds
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	kind := domain.KindUnknown
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = domain.KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		kind = domain.KindUniqueViolation
	case errors.Is(err, context.DeadlineExceeded):
		kind = domain.KindTimeout
	}
	return &domain.DataError{Kind: kind, Table: table, Op: op, Err: err}
}
