package models

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gorm_zerolog "github.com/wei840222/gorm-zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

// Connect opens the database and configures the connection.
//
// If DB_HOST is set, a postgresql connection is opened using the DB_* environment
// variables. Otherwise the sqlite database at dsn is used.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: gorm_zerolog.New(),
	}

	var db *gorm.DB
	var err error

	if _, ok := os.LookupEnv("DB_HOST"); ok {
		log.Debug().Msg("DB_HOST is set, using postgresql")
		pgDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		db, err = gorm.Open(postgres.Open(pgDSN), config)
	} else {
		log.Debug().Msg("DB_HOST is not set, using sqlite database")
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
		}
		db, err = gorm.Open(sqlite.Open(dsn), config)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	if _, ok := os.LookupEnv("DB_HOST"); !ok {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	for _, register := range []func(*gorm.DB) error{
		func(db *gorm.DB) error {
			return db.Callback().Query().After("*").Register("sikera:after_query", queryCallback)
		},
		func(db *gorm.DB) error {
			return db.Callback().Create().After("*").Register("sikera:after_create", createUpdateCallback)
		},
		func(db *gorm.DB) error {
			return db.Callback().Update().After("*").Register("sikera:after_update", createUpdateCallback)
		},
		func(db *gorm.DB) error {
			return db.Callback().Query().After("*").Register("sikera:after_query_general", generalCallback)
		},
		func(db *gorm.DB) error {
			return db.Callback().Create().After("*").Register("sikera:after_create_general", generalCallback)
		},
		func(db *gorm.DB) error {
			return db.Callback().Update().After("*").Register("sikera:after_update_general", generalCallback)
		},
		func(db *gorm.DB) error {
			return db.Callback().Delete().After("*").Register("sikera:after_delete_general", generalCallback)
		},
	} {
		if err := register(db); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// queryCallback translates query errors into errors users can act on.
func queryCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if errors.Is(db.Error, gorm.ErrRecordNotFound) && db.Statement.Schema != nil {
		name := db.Statement.Schema.Name

		// The article is part of the ErrResourceNotFound message
		article := "a"
		if strings.Contains("AEIOU", name[0:1]) {
			article = "an"
		}

		db.Error = fmt.Errorf("%w %s %s matching your query", ErrResourceNotFound, article, name)
	}
}

// createUpdateCallback translates constraint violations into errors users can act on.
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	if strings.Contains(msg, "UNIQUE constraint failed: fiscal_years.year") {
		db.Error = ErrFiscalYearNotUnique
	}

	if strings.Contains(msg, "UNIQUE constraint failed: agencies.name") {
		db.Error = ErrAgencyNameNotUnique
	}

	if strings.Contains(msg, "UNIQUE constraint failed: plan_entries.allocation_id, plan_entries.month") {
		db.Error = ErrPlanMonthNotUnique
	}

	if strings.Contains(msg, "UNIQUE constraint failed: realizations.sub_activity_id, realizations.agency_id, realizations.year") {
		db.Error = ErrRealizationNotUnique
	}

	if strings.Contains(msg, "constraint failed: month_range") {
		db.Error = ErrRealizationMonthInvalid
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		db.Error = fmt.Errorf("%w resource for at least one of the IDs you specified", ErrResourceNotFound)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message. The
// error is logged and a general message is returned to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		Agency{},
		FiscalYear{},
		FundingSource{},
		Activity{},
		SubActivity{},
		Allocation{},
		Signatory{},
		SubAllocation{},
		PlanEntry{},
		Realization{},
		RealizationMonth{},
		Monitoring{},
		MonitoringPhoto{},
		BlankoCategory{},
		BlankoItem{},
	)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
