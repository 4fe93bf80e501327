package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

The report lists database columns that no field of the corresponding model maps to.
It runs after `migrate --report` and at the end of `generate-models`.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: albums ---
Found 1 columns not accounted for in model:
  - legacy_rating

--- Table: tags ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All returns one zero value of every persisted entity, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Artist{},
		&Tag{},
		&Album{},
		&Cover{},
		&Comment{},
	}
}

// Migrate creates or updates every table, join tables included.
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

// GenerateModels migrates the schema and writes typed gorm/gen query code to outPath.
func GenerateModels(db *gorm.DB, outPath string, w io.Writer) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{Logger: verbose})

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

	fmt.Fprintln(w, "Starting database migration...")
	if err := Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(w, "Database migration completed successfully!")

	if err := ColumnMismatchReport(db, w); err != nil {
		return err
	}

	g.Execute()
	fmt.Fprintln(w, "Model generation complete!")
	return nil
}

// ColumnMismatchReport writes, per table, the columns present in the database
// that no model field maps to.
func ColumnMismatchReport(db *gorm.DB, w io.Writer) error {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	cache := &sync.Map{}
	totalMismatches := 0

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return fmt.Errorf("parse model %T: %w", model, err)
		}
		fmt.Fprintf(w, "\n--- Table: %s ---\n", s.Table)

		if !db.Migrator().HasTable(s.Table) {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("read columns of %s: %w", s.Table, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		mismatches := findColumnMismatches(dbColumns, s.DBNames)
		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		totalMismatches += len(mismatches)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return nil
}

// findColumnMismatches returns the database columns missing from modelColumns, sorted.
func findColumnMismatches(dbColumns, modelColumns []string) []string {
	known := make(map[string]bool, len(modelColumns))
	for _, c := range modelColumns {
		known[c] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
