package database

import (
	"context"
	"fmt"
	"log/slog"

	"campus-connect/config"
	"campus-connect/internal/global/logger"
	"campus-connect/internal/model"
	"campus-connect/internal/store"
	"campus-connect/tools"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	// DB is nil when the in-memory backend is active.
	DB *gorm.DB
	// Store is the active backend; modules only ever talk to this.
	Store store.Store

	log *slog.Logger
)

var autoMigrateModels = []any{
	&model.User{},
	&model.Campus{},
	&model.Event{},
	&model.ChatSession{},
}

// Init selects the storage backend: a MySQL host configures the durable GORM
// store, otherwise a seeded in-memory store serves the process.
func Init() {
	log = logger.New("Database")
	cfg := config.Get()

	if cfg.Mysql.Host == "" {
		mem := store.NewMemStore()
		seed(mem)
		Store = mem
		log.Info("using in-memory store, data will not survive restarts")
		return
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Mysql.Username,
		cfg.Mysql.Password,
		cfg.Mysql.Host,
		cfg.Mysql.Port,
		cfg.Mysql.DBName,
	)
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	}

	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	case config.ModeRelease:
		gormConfig.Logger = gormlogger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))

	Store = store.NewDBStore(db)
	log.Info("using mysql store", "host", cfg.Mysql.Host, "db", cfg.Mysql.DBName)
}

// seed gives a fresh in-memory store one demo campus and its lead so the
// dashboard works out of the box.
func seed(s store.Store) {
	ctx := context.Background()

	campus := &model.Campus{
		Name:        "Tech University Campus",
		Description: "Empowering innovation through collaborative learning",
		MemberCount: 450,
	}
	tools.PanicOnErr(s.CreateCampus(ctx, campus))

	lead := &model.User{
		Email:    "lead@techuniversity.edu",
		Password: tools.PasswordEncrypt("password123"),
		Name:     "John Doe",
		Role:     model.RoleCampusLead,
		CampusID: &campus.ID,
	}
	tools.PanicOnErr(s.CreateUser(ctx, lead))
}
