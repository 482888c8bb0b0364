package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE ADDRESS BOOK TABLES
// ══════════════════════════════════════════════════════════════════════════════

// Every record column is nullable. A damaged row is reported by the adapter
// layer as a missing field instead of failing the query.
const migration001Up = `
CREATE TABLE IF NOT EXISTS tutorbook_persons (
    position INTEGER PRIMARY KEY,
    role     TEXT,
    name     TEXT,
    phone    TEXT,
    email    TEXT,
    address  TEXT,
    hours    TEXT,
    subjects TEXT[]
);

CREATE TABLE IF NOT EXISTS tutorbook_lessons (
    position     INTEGER PRIMARY KEY,
    subject      TEXT,
    day          TEXT,
    start_time   TEXT,
    end_time     TEXT,
    participants TEXT[]
);

CREATE TABLE IF NOT EXISTS tutorbook_store_meta (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const migration001Down = `
DROP TABLE IF EXISTS tutorbook_store_meta;
DROP TABLE IF EXISTS tutorbook_lessons;
DROP TABLE IF EXISTS tutorbook_persons;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: INDEX LESSON PARTICIPANTS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE INDEX IF NOT EXISTS idx_tutorbook_lessons_participants
    ON tutorbook_lessons USING GIN (participants);
`

const migration002Down = `
DROP INDEX IF EXISTS idx_tutorbook_lessons_participants;
`

// Migrations returns the schema migrations in version order.
func Migrations() []Migration {
	return []Migration{
		{Version: 1, Name: "create_address_book", UpSQL: migration001Up, DownSQL: migration001Down},
		{Version: 2, Name: "index_lesson_participants", UpSQL: migration002Up, DownSQL: migration002Down},
	}
}
