// internal/storage/schema.go
package storage

// schema holds the DDL for the four logical tables. The partial unique
// index on issues guarantees at most one Active issue per item+member pair,
// so double-issue races surface as a constraint violation instead of
// silently creating a second loan.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		password_salt TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS memberships (
		membership_id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		contact_address TEXT NOT NULL,
		aadhar_card_no TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		pending_fine NUMERIC(10,2) NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		serial_no TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		author_name TEXT NOT NULL,
		category TEXT NOT NULL,
		type TEXT NOT NULL,
		cost NUMERIC(10,2) NOT NULL,
		procurement_date DATE NOT NULL,
		total_copies INT NOT NULL,
		available_copies INT NOT NULL,
		current_status TEXT NOT NULL DEFAULT 'Available',
		CHECK (available_copies >= 0 AND available_copies <= total_copies)
	)`,

	`CREATE TABLE IF NOT EXISTS issues (
		id BIGSERIAL PRIMARY KEY,
		serial_no TEXT NOT NULL REFERENCES items(serial_no),
		membership_id TEXT NOT NULL REFERENCES memberships(membership_id),
		issue_date DATE NOT NULL,
		return_date_due DATE NOT NULL,
		return_date_actual DATE,
		fine_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		fine_paid BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL DEFAULT 'Active'
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS issues_one_active_per_pair
		ON issues (serial_no, membership_id) WHERE status = 'Active'`,
}
