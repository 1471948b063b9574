package database

import (
	"errors"
	"fmt"
	"time"

	"centavo/internal/logger"
	"centavo/internal/models"

	"gorm.io/gorm"
)

// ProductUniqueMarker is the sentinel name recording that the products
// table has been rebuilt with per-profile name uniqueness.
const ProductUniqueMarker = "products_unique_per_profile"

// LegacyProfileID is the placeholder stamped on rows that predate profile
// scoping when no default profile exists to adopt them.
const LegacyProfileID = "legacy"

// profileScopedTables lists every table expected to carry a profile_id
// column. Legacy stores predate profile scoping entirely.
var profileScopedTables = []string{
	"categories", "ledger_entries", "cards", "bank_loans",
	"recurring_obligations", "shopping_months", "products",
	"shopping_items", "saved_shopping_lists",
}

// featureColumns lists optional columns introduced by later features.
// Each addition is independently idempotent: check the live schema, then
// add. Order is irrelevant.
var featureColumns = []struct {
	table  string
	column string
	ddl    string
}{
	{"ledger_entries", "payment_method", "TEXT"},
	{"ledger_entries", "card_id", "TEXT"},
	{"ledger_entries", "installments", "INTEGER DEFAULT 1"},
	{"ledger_entries", "parent_entry_id", "TEXT"},
	{"ledger_entries", "total_amount", "INTEGER"},
	{"ledger_entries", "principal_amount", "INTEGER"},
	{"ledger_entries", "interest_amount", "INTEGER"},
	{"ledger_entries", "installment_amount", "INTEGER"},
	{"ledger_entries", "bank_loan_id", "TEXT"},
	{"cards", "closing_day", "INTEGER"},
	{"cards", "due_day", "INTEGER"},
	{"cards", `"limit"`, "INTEGER"},
	{"recurring_obligations", "status", "TEXT DEFAULT 'active'"},
	{"shopping_months", "voucher_limit", "INTEGER DEFAULT 0"},
	{"shopping_months", "created_at", "DATETIME"},
	{"shopping_months", "updated_at", "DATETIME"},
	{"shopping_items", "quantity", "INTEGER DEFAULT 1"},
	{"shopping_items", "list_item_id", "TEXT"},
	{"products", "created_at", "DATETIME"},
	{"products", "updated_at", "DATETIME"},
}

type migrationStep struct {
	name string
	run  func(db *gorm.DB) error
}

// Migrate brings a store in any prior state to the current schema. Every
// step is independently idempotent, so a crashed or skipped-version store
// converges by simply running again. Per-step failures are logged and
// skipped rather than aborting startup: a missing optional column degrades
// capability, it does not brick the app. The one destructive step (product
// uniqueness rebuild) is sentinel-guarded and retries whole on failure.
func Migrate(db *gorm.DB) error {
	log := logger.Named("migrate")

	steps := []migrationStep{
		{"create_tables", createTables},
		{"add_profile_columns", addProfileColumns},
		{"add_feature_columns", addFeatureColumns},
		{"rebuild_product_uniqueness", rebuildProductUniqueness},
		{"clean_orphans_and_duplicates", cleanOrphansAndDuplicates},
		// Indexes come after cleanup: a unique index cannot be built
		// over the duplicate buckets cleanup is about to remove.
		{"create_indexes", createIndexes},
	}

	for _, s := range steps {
		if err := s.run(db); err != nil {
			log.Warnw("migration step failed, continuing", "step", s.name, "error", err)
			continue
		}
		log.Debugw("migration step ok", "step", s.name)
	}
	return nil
}

// createTables ensures every expected table exists.
func createTables(db *gorm.DB) error {
	for _, ddl := range schemaDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// createIndexes ensures every expected index exists.
func createIndexes(db *gorm.DB) error {
	for _, ddl := range indexDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// addProfileColumns backfills the profile_id column on every
// profile-scoped table that predates profile scoping. SQLite ALTER is
// additive-only, so the column is added nullable and never dropped or
// renamed in place.
func addProfileColumns(db *gorm.DB) error {
	for _, table := range profileScopedTables {
		if err := addColumn(db, table, "profile_id", "TEXT"); err != nil {
			return err
		}
	}
	return nil
}

// addFeatureColumns check-then-adds every optional column introduced by a
// later feature.
func addFeatureColumns(db *gorm.DB) error {
	for _, fc := range featureColumns {
		if err := addColumn(db, fc.table, fc.column, fc.ddl); err != nil {
			return err
		}
	}
	return nil
}

func addColumn(db *gorm.DB, table, column, ddl string) error {
	// A quoted column name still has to match the bare name PRAGMA reports.
	bare := column
	if len(bare) > 1 && bare[0] == '"' {
		bare = bare[1 : len(bare)-1]
	}
	ok, err := HasColumn(db, table, bare)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if err := db.Exec(fmt.Sprintf(`ALTER TABLE %q ADD COLUMN %s %s`, table, column, ddl)).Error; err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, bare, err)
	}
	return nil
}

// rebuildProductUniqueness moves product name uniqueness from global to
// per-profile. The sentinel check comes first: once the marker row exists
// the rebuild never runs again. Until the marker is written the whole
// shadow-table sequence retries from a clean slate, so a crash at any
// point is safe.
func rebuildProductUniqueness(db *gorm.DB) error {
	var marker models.SchemaMarker
	err := db.First(&marker, "name = ?", ProductUniqueMarker).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("read schema marker: %w", err)
	}

	// Rows that predate profile scoping are adopted by the default
	// profile when one exists, otherwise stamped with the legacy
	// placeholder.
	placeholder := LegacyProfileID
	var def models.Profile
	if err := db.First(&def, "is_default = ?", true).Error; err == nil {
		placeholder = def.ID
	}

	// Never trust partial shadow state from a crashed attempt.
	if err := db.Exec(`DROP TABLE IF EXISTS products_rebuild`).Error; err != nil {
		return fmt.Errorf("drop stale shadow table: %w", err)
	}

	if err := db.Exec(`CREATE TABLE products_rebuild (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    name TEXT NOT NULL,
    category_id TEXT,
    UNIQUE (name, profile_id)
);`).Error; err != nil {
		return fmt.Errorf("create shadow table: %w", err)
	}

	if err := db.Exec(`INSERT INTO products_rebuild (id, created_at, updated_at, profile_id, name, category_id)
    SELECT id, created_at, updated_at, COALESCE(profile_id, ?), name, category_id FROM products`,
		placeholder).Error; err != nil {
		return fmt.Errorf("copy products into shadow table: %w", err)
	}

	if err := db.Exec(`DROP TABLE products`).Error; err != nil {
		return fmt.Errorf("drop original products table: %w", err)
	}
	if err := db.Exec(`ALTER TABLE products_rebuild RENAME TO products`).Error; err != nil {
		return fmt.Errorf("rename shadow table: %w", err)
	}

	marker = models.SchemaMarker{Name: ProductUniqueMarker, AppliedAt: time.Now()}
	if err := db.Create(&marker).Error; err != nil {
		return fmt.Errorf("write schema marker: %w", err)
	}
	return nil
}

// cleanOrphansAndDuplicates removes rows violating invariants introduced
// by newer schema versions: ledger rows with no profile, cart and saved
// items whose parent is gone, empty saved lists, and duplicate
// (year, month, profile) buckets. For duplicates only the most recently
// created row survives, ties broken by insertion order.
func cleanOrphansAndDuplicates(db *gorm.DB) error {
	stmts := []string{
		`DELETE FROM ledger_entries WHERE profile_id IS NULL`,
		`DELETE FROM shopping_items WHERE shopping_month_id NOT IN (SELECT id FROM shopping_months)`,
		`DELETE FROM saved_shopping_items WHERE list_id NOT IN (SELECT id FROM saved_shopping_lists)`,
		`DELETE FROM saved_shopping_lists WHERE id NOT IN (SELECT DISTINCT list_id FROM saved_shopping_items)`,
		`DELETE FROM shopping_months WHERE rowid NOT IN (
    SELECT rowid FROM (
        SELECT rowid, ROW_NUMBER() OVER (
            PARTITION BY year, month, profile_id
            ORDER BY created_at DESC, rowid DESC
        ) AS rn FROM shopping_months
    ) WHERE rn = 1
)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
	}
	return nil
}
