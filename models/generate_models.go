package models

import (
	"fmt"

	"gorm.io/gen"
	"gorm.io/gorm"
)

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&Project{},
		&ContactSubmission{},
		&HireRequest{},
		&QuickLink{},
	}
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

/*
GenerateModels migrates the schema and then writes typed query helpers for
every model into outPath (./generated by default):

	GENERATE_MODELS=true go run .
*/
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	if outPath == "" {
		outPath = "./generated"
	}

	if err := Migrate(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	return nil
}
