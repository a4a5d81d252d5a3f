package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/yousseftayari/ElectroDoc/internal/conf"
	"github.com/yousseftayari/ElectroDoc/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Data 结构体持有数据库句柄
type Data struct {
	DB *gorm.DB
}

func NewData(cfg *conf.Config) (*Data, func(), error) {
	// 1. 按配置选择驱动打开数据库
	var dialector gorm.Dialector
	switch cfg.Data.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.Data.DatabaseSource)
	case "sqlite", "":
		// 单文件存储：先保证 instance 目录存在
		if dir := filepath.Dir(cfg.Data.DatabaseSource); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create db directory: %v", err)
			}
		}
		dialector = sqlite.Open(cfg.Data.DatabaseSource)
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", cfg.Data.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %v", err)
	}

	// 2. 自动迁移：建表或补字段
	if err := db.AutoMigrate(
		&model.User{},
		&model.Document{},
		&model.DocumentState{},
	); err != nil {
		return nil, nil, fmt.Errorf("schema migration failed: %v", err)
	}
	log.Println("✅ 数据库表结构迁移完成")

	// 3. 空库时写入示例数据 (可配置关闭)
	if cfg.App.SeedSample {
		if err := SeedSampleData(db); err != nil {
			return nil, nil, fmt.Errorf("seed sample data failed: %v", err)
		}
	}

	d := &Data{DB: db}

	cleanup := func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
		log.Println("🧹 数据层资源已释放")
	}

	return d, cleanup, nil
}

// SeedSampleData 文档表为空时插入三条示例记录
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Document{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []model.Document{
		{NumeroDossier: "Dossier001", NumeroCarton: "CartonA", Modele: "ModelX",
			States: []model.DocumentState{{StateType: "REP", Quantity: 1}}},
		{NumeroDossier: "Dossier002", NumeroCarton: "CartonB", Modele: "ModelY",
			States: []model.DocumentState{{StateType: "HS", Quantity: 2}}},
		{NumeroDossier: "Dossier003", NumeroCarton: "CartonC", Modele: "ModelZ",
			States: []model.DocumentState{{StateType: "BRK", SubState: "ecran,clavier", Quantity: 1}}},
	}
	if err := db.Create(&samples).Error; err != nil {
		return err
	}

	log.Printf("🎉 已写入 %d 条示例文档", len(samples))
	return nil
}
