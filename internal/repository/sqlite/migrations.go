package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_digest TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS auctions (
    auction_id TEXT PRIMARY KEY,
    item_name TEXT NOT NULL,
    description TEXT NOT NULL,
    starting_bid REAL NOT NULL,
    current_bid REAL NOT NULL,
    highest_bidder TEXT NOT NULL DEFAULT '',
    closing_time INTEGER NOT NULL,
    is_closed INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_auctions_closing_time ON auctions(closing_time);
CREATE INDEX IF NOT EXISTS idx_auctions_created_at ON auctions(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
