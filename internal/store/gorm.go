package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sambutracy/filterfund/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Record 按实体类别分区的键值记录行
type Record struct {
	Kind      string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;size:128"`
	Value     []byte    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名
func (Record) TableName() string {
	return "keyed_record"
}

// Init 初始化数据库连接
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// 常用的键编码函数
func StringKey(k string) string { return k }

func Uint32Key(k uint32) string { return strconv.FormatUint(uint64(k), 10) }

func Uint64Key(k uint64) string { return strconv.FormatUint(k, 10) }

// Gorm 数据库实现，记录值以JSON序列化后落库
type Gorm[K comparable, V any] struct {
	db    *gorm.DB
	kind  string
	keyFn func(K) string
}

// NewGorm 创建指定实体类别的数据库存储
func NewGorm[K comparable, V any](db *gorm.DB, kind string, keyFn func(K) string) *Gorm[K, V] {
	return &Gorm[K, V]{db: db, kind: kind, keyFn: keyFn}
}

func (s *Gorm[K, V]) Get(key K) (V, bool, error) {
	var zero V

	var rec Record
	err := s.db.Where("kind = ? AND key = ?", s.kind, s.keyFn(key)).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("读取记录失败: %w", err)
	}

	var value V
	if err := json.Unmarshal(rec.Value, &value); err != nil {
		return zero, false, fmt.Errorf("解析记录失败: %w", err)
	}
	return value, true, nil
}

func (s *Gorm[K, V]) Insert(key K, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化记录失败: %w", err)
	}

	rec := Record{Kind: s.kind, Key: s.keyFn(key), Value: data}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("写入记录失败: %w", err)
	}
	return nil
}

func (s *Gorm[K, V]) Remove(key K) error {
	result := s.db.Where("kind = ? AND key = ?", s.kind, s.keyFn(key)).Delete(&Record{})
	if result.Error != nil {
		return fmt.Errorf("删除记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
