package dao

import (
	"context"
	"jansaathi/jansaathi/sources/psql/models"
	"strings"

	"gorm.io/gorm"
)

type SchemeDAO struct {
	DB *gorm.DB
}

func NewSchemeDAO(db *gorm.DB) *SchemeDAO {
	return &SchemeDAO{DB: db}
}

// ListActive returns every active scheme, highest priority first. This is
// the set serialized into the assistant's context block.
func (dao *SchemeDAO) ListActive(ctx context.Context) ([]models.Scheme, error) {
	var schemes []models.Scheme
	err := dao.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority_score DESC").
		Find(&schemes).Error
	if err != nil {
		return nil, err
	}
	return schemes, nil
}

// SchemeFilter narrows the directory listing. Zero values mean no filter.
type SchemeFilter struct {
	Sector string
	Level  string
	State  string
	Search string
}

// List returns active schemes matching the filter, highest priority first.
func (dao *SchemeDAO) List(ctx context.Context, f SchemeFilter) ([]models.Scheme, error) {
	q := dao.DB.WithContext(ctx).Where("is_active = ?", true)
	if f.Sector != "" {
		q = q.Where("sector = ?", f.Sector)
	}
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(scheme_name) LIKE ? OR LOWER(benefits) LIKE ? OR LOWER(sector) LIKE ?",
			needle, needle, needle,
		)
	}

	var schemes []models.Scheme
	if err := q.Order("priority_score DESC").Find(&schemes).Error; err != nil {
		return nil, err
	}
	return schemes, nil
}
