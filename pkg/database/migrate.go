package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// 迁移版本表，独立命名避免与业务表混淆
const migrationsTable = "campus_event_schema_migrations"

// RunMigrations 将嵌入的迁移脚本应用到当前库。
// 幂等：已是最新版本时不做任何变更
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	before, _, _ := m.Version()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	switch {
	case dirty:
		logger.Warn("数据库迁移处于 dirty 状态，需人工介入",
			zap.Uint("version", version),
			zap.String("table", migrationsTable))
	case version == before:
		logger.Info("数据库结构已是最新", zap.Uint("version", version))
	default:
		logger.Info("数据库迁移完成",
			zap.Uint("from", before),
			zap.Uint("to", version))
	}

	return nil
}
