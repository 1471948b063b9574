package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Expected table DDL. Creation is additive: IF NOT EXISTS on every
// statement, so the list can run against a store in any prior state.
// Legacy stores are brought to these shapes column by column by the
// migration engine; this DDL only decides what a fresh table looks like.
const (
	createProfiles = `CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    name TEXT NOT NULL,
    icon TEXT,
    is_default INTEGER NOT NULL DEFAULT 0
);`

	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    icon TEXT,
    color TEXT
);`

	createLedgerEntries = `CREATE TABLE IF NOT EXISTS ledger_entries (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    description TEXT NOT NULL,
    amount INTEGER NOT NULL,
    kind TEXT NOT NULL,
    category_id TEXT,
    date DATETIME NOT NULL,
    payment_method TEXT,
    card_id TEXT,
    installments INTEGER DEFAULT 1,
    parent_entry_id TEXT,
    total_amount INTEGER,
    principal_amount INTEGER,
    interest_amount INTEGER,
    installment_amount INTEGER,
    bank_loan_id TEXT
);`

	createCards = `CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    name TEXT NOT NULL,
    brand TEXT,
    closing_day INTEGER,
    due_day INTEGER,
    "limit" INTEGER
);`

	createBankLoans = `CREATE TABLE IF NOT EXISTS bank_loans (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    description TEXT NOT NULL,
    total_amount INTEGER NOT NULL,
    principal_amount INTEGER NOT NULL,
    interest_amount INTEGER NOT NULL,
    installment_amount INTEGER NOT NULL,
    installments INTEGER NOT NULL,
    category_id TEXT,
    start_date DATETIME NOT NULL,
    status TEXT NOT NULL DEFAULT 'active'
);`

	createRecurringObligations = `CREATE TABLE IF NOT EXISTS recurring_obligations (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    name TEXT NOT NULL,
    amount INTEGER NOT NULL,
    category_id TEXT,
    kind TEXT NOT NULL,
    frequency TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active'
);`

	createObligationMonths = `CREATE TABLE IF NOT EXISTS recurring_obligation_months (
    obligation_id TEXT NOT NULL,
    month INTEGER NOT NULL,
    PRIMARY KEY (obligation_id, month)
);`

	createShoppingMonths = `CREATE TABLE IF NOT EXISTS shopping_months (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    year INTEGER NOT NULL,
    month INTEGER NOT NULL,
    voucher_limit INTEGER DEFAULT 0
);`

	createProducts = `CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    name TEXT NOT NULL,
    category_id TEXT,
    UNIQUE (name, profile_id)
);`

	createShoppingItems = `CREATE TABLE IF NOT EXISTS shopping_items (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    shopping_month_id TEXT NOT NULL,
    product_id TEXT,
    name TEXT,
    amount INTEGER NOT NULL,
    quantity INTEGER DEFAULT 1,
    category_id TEXT,
    list_item_id TEXT
);`

	createSavedShoppingLists = `CREATE TABLE IF NOT EXISTS saved_shopping_lists (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    profile_id TEXT,
    shopping_month_id TEXT,
    name TEXT NOT NULL
);`

	createSavedShoppingItems = `CREATE TABLE IF NOT EXISTS saved_shopping_items (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    list_id TEXT NOT NULL,
    product_id TEXT,
    name TEXT,
    amount INTEGER NOT NULL,
    quantity INTEGER DEFAULT 1,
    category_id TEXT
);`

	createSchemaMarkers = `CREATE TABLE IF NOT EXISTS schema_markers (
    name TEXT PRIMARY KEY,
    applied_at DATETIME
);`
)

// Index DDL, applied after table creation.
const (
	idxShoppingMonthsKey  = `CREATE UNIQUE INDEX IF NOT EXISTS idx_shopping_months_key ON shopping_months(year, month, profile_id);`
	idxLedgerProfileDate  = `CREATE INDEX IF NOT EXISTS idx_ledger_entries_profile_date ON ledger_entries(profile_id, date);`
	idxLedgerParent       = `CREATE INDEX IF NOT EXISTS idx_ledger_entries_parent ON ledger_entries(parent_entry_id);`
	idxShoppingItemsMonth = `CREATE INDEX IF NOT EXISTS idx_shopping_items_month ON shopping_items(shopping_month_id);`
	idxSavedItemsList     = `CREATE INDEX IF NOT EXISTS idx_saved_shopping_items_list ON saved_shopping_items(list_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createProfiles,
	createCategories,
	createLedgerEntries,
	createCards,
	createBankLoans,
	createRecurringObligations,
	createObligationMonths,
	createShoppingMonths,
	createProducts,
	createShoppingItems,
	createSavedShoppingLists,
	createSavedShoppingItems,
	createSchemaMarkers,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxShoppingMonthsKey,
	idxLedgerProfileDate,
	idxLedgerParent,
	idxShoppingItemsMonth,
	idxSavedItemsList,
}

// ExpectedTables returns the names of every table the current schema
// carries, in creation order.
func ExpectedTables() []string {
	return []string{
		"profiles", "categories", "ledger_entries", "cards", "bank_loans",
		"recurring_obligations", "recurring_obligation_months",
		"shopping_months", "products", "shopping_items",
		"saved_shopping_lists", "saved_shopping_items", "schema_markers",
	}
}

// TableExists reports whether a table of the given name exists in the live
// store. It reads sqlite_master directly; there is no cached version marker.
func TableExists(db *gorm.DB, table string) (bool, error) {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("inspect table %s: %w", table, err)
	}
	return count > 0, nil
}

// TableColumns returns the column names of a table as observed in the live
// store, in declaration order. A missing table yields an empty slice.
func TableColumns(db *gorm.DB, table string) ([]string, error) {
	type columnInfo struct {
		Name string `gorm:"column:name"`
	}
	var cols []columnInfo
	// PRAGMA arguments cannot be bound; the table name comes from our own
	// schema catalog, never from user input.
	err := db.Raw(fmt.Sprintf(`PRAGMA table_info(%q)`, table)).Scan(&cols).Error
	if err != nil {
		return nil, fmt.Errorf("inspect columns of %s: %w", table, err)
	}
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	return names, nil
}

// HasColumn reports whether a table currently carries the given column.
func HasColumn(db *gorm.DB, table, column string) (bool, error) {
	cols, err := TableColumns(db, table)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if c == column {
			return true, nil
		}
	}
	return false, nil
}

// IndexInfo describes one index of a table as observed in the live store.
type IndexInfo struct {
	Name    string
	Unique  bool
	Columns []string
}

// TableIndexes returns the index definitions of a table as observed in the
// live store.
func TableIndexes(db *gorm.DB, table string) ([]IndexInfo, error) {
	type indexListRow struct {
		Name   string `gorm:"column:name"`
		Unique int    `gorm:"column:unique"`
	}
	var list []indexListRow
	if err := db.Raw(fmt.Sprintf(`PRAGMA index_list(%q)`, table)).Scan(&list).Error; err != nil {
		return nil, fmt.Errorf("inspect indexes of %s: %w", table, err)
	}

	indexes := make([]IndexInfo, 0, len(list))
	for _, row := range list {
		type indexInfoRow struct {
			Name string `gorm:"column:name"`
		}
		var cols []indexInfoRow
		if err := db.Raw(fmt.Sprintf(`PRAGMA index_info(%q)`, row.Name)).Scan(&cols).Error; err != nil {
			return nil, fmt.Errorf("inspect index %s: %w", row.Name, err)
		}
		info := IndexInfo{Name: row.Name, Unique: row.Unique == 1}
		for _, c := range cols {
			info.Columns = append(info.Columns, c.Name)
		}
		indexes = append(indexes, info)
	}
	return indexes, nil
}
