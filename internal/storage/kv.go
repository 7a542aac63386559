package storage

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KV is the string-keyed persistent store the persistence adapter wraps
// (the localStorage equivalent). Values are JSON documents.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type kvRecord struct {
	Key       string         `gorm:"column:key;primaryKey"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (kvRecord) TableName() string { return "fadem_kv" }

// GormKV stores key/value pairs in a single table via GORM
// (SQLite embedded by default, Postgres for server deployments).
type GormKV struct {
	DB *gorm.DB
}

// OpenSQLite opens (and migrates) the embedded SQLite store.
// path ":memory:" gives an in-memory store for tests.
func OpenSQLite(path string) (*GormKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return newGormKV(db)
}

// OpenPostgres opens the same KV table on Postgres.
// PreferSimpleProtocol avoids prepared-statement clashes behind poolers.
func OpenPostgres(dsn string) (*GormKV, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return newGormKV(db)
}

func newGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &GormKV{DB: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec kvRecord
	err := g.DB.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(rec.Value), true, nil
}

func (g *GormKV) Set(ctx context.Context, key, value string) error {
	rec := kvRecord{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (g *GormKV) Delete(ctx context.Context, key string) error {
	return g.DB.WithContext(ctx).Where("key = ?", key).Delete(&kvRecord{}).Error
}

func (g *GormKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := g.DB.WithContext(ctx).Model(&kvRecord{}).
		Where("key LIKE ?", prefix+"%").
		Pluck("key", &keys).Error
	return keys, err
}
