// File: store/schema.go
package store

// schema creates all tables. Contacts deliberately have no foreign key into
// sponsorships: deleting a contact must never cascade into sponsorship
// history.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	congregation  TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS configurations (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL,
	type               TEXT NOT NULL,
	title              TEXT NOT NULL,
	notification_email TEXT NOT NULL DEFAULT '',
	payment_settings   TEXT NOT NULL DEFAULT '{}',
	display_settings   TEXT NOT NULL DEFAULT '{}',
	created_at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_configurations_user ON configurations(user_id, created_at);

CREATE TABLE IF NOT EXISTS sponsorships (
	id                       TEXT PRIMARY KEY,
	config_owner_id          TEXT NOT NULL,
	sponsor_name             TEXT NOT NULL,
	occasion                 TEXT NOT NULL DEFAULT '',
	contact_email            TEXT NOT NULL DEFAULT '',
	status                   TEXT NOT NULL,
	sponsorship_type         TEXT NOT NULL,
	shabbat_date             TEXT NOT NULL DEFAULT '',
	parsha                   TEXT NOT NULL DEFAULT '',
	custom_sponsorable_id    TEXT NOT NULL DEFAULT '',
	custom_sponsorable_title TEXT NOT NULL DEFAULT '',
	payment_method           TEXT NOT NULL DEFAULT '',
	kiddush_type             TEXT NOT NULL DEFAULT '',
	form_title               TEXT NOT NULL DEFAULT '',
	reserved_by_admin        BOOLEAN NOT NULL DEFAULT 0,
	submitted_at             TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sponsorships_owner_status ON sponsorships(config_owner_id, status, submitted_at);

CREATE TABLE IF NOT EXISTS custom_events (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	start_date  TEXT NOT NULL,
	end_date    TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_custom_events_owner_end ON custom_events(user_id, end_date, start_date);

CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_owner ON contacts(user_id);
`
