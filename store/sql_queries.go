package store

// Table and column names created by the embedded migrations.
const (
	storeTable        = "clerk_store"
	storeKeyColumn    = "store_key"
	storeValueColumn  = "store_value"
	storeUpdatedAtCol = "updated_at"

	// upsertSuffix is valid for both SQLite (3.24+) and PostgreSQL.
	upsertSuffix = "ON CONFLICT (" + storeKeyColumn + ") DO UPDATE SET " +
		storeValueColumn + " = excluded." + storeValueColumn + ", " +
		storeUpdatedAtCol + " = excluded." + storeUpdatedAtCol
)
