// Package postgres implements the repository contracts over PostgreSQL via
// pgx. It is selected with database.driver "postgres" and exists so the
// in-memory mock store can be swapped for a real database without changing
// any service signature.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/learnhub/internal/app/repositories"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	phone         TEXT,
	bio           TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS courses (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL,
	short_description TEXT NOT NULL,
	image             TEXT NOT NULL,
	price             DOUBLE PRECISION NOT NULL,
	duration          INTEGER NOT NULL,
	capacity          INTEGER NOT NULL,
	enrolled_count    INTEGER NOT NULL DEFAULT 0,
	category          TEXT NOT NULL,
	level             TEXT NOT NULL,
	start_date        TEXT NOT NULL,
	end_date          TEXT NOT NULL,
	days              TEXT[] NOT NULL DEFAULT '{}',
	time_start        TEXT NOT NULL,
	time_end          TEXT NOT NULL,
	instructor_id     TEXT NOT NULL,
	instructor_name   TEXT NOT NULL,
	instructor_avatar TEXT,
	tags              TEXT[] NOT NULL DEFAULT '{}',
	rating            DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count      INTEGER NOT NULL DEFAULT 0,
	position          BIGSERIAL
);

CREATE TABLE IF NOT EXISTS enrollments (
	id          TEXT PRIMARY KEY,
	course_id   TEXT NOT NULL REFERENCES courses(id),
	user_id     TEXT NOT NULL,
	status      TEXT NOT NULL,
	enrolled_at TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	position    BIGSERIAL,
	UNIQUE (course_id, user_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	sender_id    TEXT NOT NULL,
	recipient_id TEXT NOT NULL,
	course_id    TEXT NOT NULL,
	content      TEXT NOT NULL,
	ts           TIMESTAMPTZ NOT NULL,
	read         BOOLEAN NOT NULL DEFAULT FALSE,
	position     BIGSERIAL
);
`

// Migrate applies the schema. The statements are idempotent; there is no
// versioned migration path for this store.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// NewRepositories builds the full postgres repository set.
func NewRepositories(pool *pgxpool.Pool) *repositories.Repositories {
	return &repositories.Repositories{
		Courses:     NewCourseRepository(pool),
		Enrollments: NewEnrollmentRepository(pool),
		Messages:    NewMessageRepository(pool),
		Users:       NewUserRepository(pool),
	}
}
