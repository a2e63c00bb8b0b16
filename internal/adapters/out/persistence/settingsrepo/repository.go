// Package settingsrepo stores key/value settings such as per-vehicle capacity
// overrides.
package settingsrepo

import (
	"context"
	"strings"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingDTO struct {
	Key   string `gorm:"column:setting_key;size:128;primaryKey"`
	Value string `gorm:"column:setting_value;not null"`
}

func (SettingDTO) TableName() string {
	return "settings"
}

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) GetByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	var dtos []SettingDTO
	err := r.db.WithContext(ctx).
		Where("setting_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(dtos))
	for _, dto := range dtos {
		settings[dto.Key] = dto.Value
	}
	return settings, nil
}

func (r *GormSettingsRepository) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
		}).
		Create(&SettingDTO{Key: key, Value: value}).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
