package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last step; its presence means the schema is complete.
const sentinelTable = "public.group_chats"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_families",
		SQL: `CREATE TABLE IF NOT EXISTS families (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  family_id         UUID        REFERENCES families (id),
  first_name        TEXT        NOT NULL,
  last_name         TEXT        NOT NULL,
  email             TEXT        NOT NULL UNIQUE,
  password_hash     TEXT        NOT NULL DEFAULT '',
  phone_number      TEXT,
  sns_endpoint_arn  TEXT,
  profile_photo_key TEXT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_family_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_family_created ON users (family_id, created_at);`,
	},
	{
		Name: "create_table_children",
		SQL: `CREATE TABLE IF NOT EXISTS children (
  id         UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  family_id  UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  first_name VARCHAR(100) NOT NULL,
  last_name  VARCHAR(100) NOT NULL,
  dob        DATE         NOT NULL,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_custody",
		SQL: `CREATE TABLE IF NOT EXISTS custody (
  id               BIGSERIAL    PRIMARY KEY,
  family_id        UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  date             DATE         NOT NULL,
  actor_id         UUID         NOT NULL REFERENCES users (id),
  custodian_id     UUID         NOT NULL REFERENCES users (id),
  handoff_day      BOOLEAN      NOT NULL DEFAULT false,
  handoff_time     TIME,
  handoff_location VARCHAR(255),
  created_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
  UNIQUE (family_id, date)
);`,
	},
	{
		Name: "create_table_schedule_templates",
		SQL: `CREATE TABLE IF NOT EXISTS schedule_templates (
  id                 BIGSERIAL    PRIMARY KEY,
  family_id          UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  name               VARCHAR(255) NOT NULL,
  description        TEXT,
  pattern_type       VARCHAR(50)  NOT NULL,
  pattern            JSONB        NOT NULL,
  is_active          BOOLEAN      NOT NULL DEFAULT false,
  created_by_user_id UUID         NOT NULL REFERENCES users (id),
  created_at         TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_schedule_templates_one_active",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_schedule_templates_one_active ON schedule_templates (family_id) WHERE is_active;`,
	},
	{
		Name: "create_table_reminders",
		SQL: `CREATE TABLE IF NOT EXISTS reminders (
  id                   BIGSERIAL   PRIMARY KEY,
  family_id            UUID        NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  date                 DATE        NOT NULL,
  text                 TEXT        NOT NULL,
  notification_enabled BOOLEAN     NOT NULL DEFAULT false,
  notification_time    TIME,
  notified_at          TIMESTAMPTZ,
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (family_id, date)
);`,
	},
	{
		Name: "create_index_reminders_pending",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reminders_pending ON reminders (date) WHERE notification_enabled AND notified_at IS NULL;`,
	},
	{
		Name: "create_table_medications",
		SQL: `CREATE TABLE IF NOT EXISTS medications (
  id               BIGSERIAL    PRIMARY KEY,
  family_id        UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  name             VARCHAR(255) NOT NULL,
  dosage           VARCHAR(100),
  frequency        VARCHAR(100),
  instructions     TEXT,
  start_date       DATE,
  end_date         DATE,
  is_active        BOOLEAN      NOT NULL DEFAULT true,
  reminder_enabled BOOLEAN      NOT NULL DEFAULT false,
  reminder_time    TIME,
  notes            TEXT,
  created_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_journal_entries",
		SQL: `CREATE TABLE IF NOT EXISTS journal_entries (
  id         BIGSERIAL    PRIMARY KEY,
  family_id  UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  user_id    UUID         NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  title      VARCHAR(255),
  content    TEXT         NOT NULL,
  entry_date DATE         NOT NULL,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_journal_entries_family_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_journal_entries_family_date ON journal_entries (family_id, entry_date DESC);`,
	},
	{
		Name: "create_table_notification_emails",
		SQL: `CREATE TABLE IF NOT EXISTS notification_emails (
  id         BIGSERIAL   PRIMARY KEY,
  family_id  UUID        NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  email      TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (family_id, email)
);`,
	},
	{
		Name: "create_table_babysitters",
		SQL: `CREATE TABLE IF NOT EXISTS babysitters (
  id                 BIGSERIAL     PRIMARY KEY,
  first_name         VARCHAR(100)  NOT NULL,
  last_name          VARCHAR(100)  NOT NULL,
  phone_number       VARCHAR(20)   NOT NULL,
  rate               NUMERIC(6, 2),
  notes              TEXT,
  created_by_user_id UUID          NOT NULL REFERENCES users (id),
  created_at         TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_babysitter_families",
		SQL: `CREATE TABLE IF NOT EXISTS babysitter_families (
  babysitter_id    BIGINT      NOT NULL REFERENCES babysitters (id) ON DELETE CASCADE,
  family_id        UUID        NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  added_by_user_id UUID        NOT NULL REFERENCES users (id),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (babysitter_id, family_id)
);`,
	},
	{
		Name: "create_table_emergency_contacts",
		SQL: `CREATE TABLE IF NOT EXISTS emergency_contacts (
  id                 BIGSERIAL    PRIMARY KEY,
  family_id          UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  first_name         VARCHAR(100) NOT NULL,
  last_name          VARCHAR(100) NOT NULL,
  phone_number       VARCHAR(20)  NOT NULL,
  relationship       VARCHAR(100),
  notes              TEXT,
  created_by_user_id UUID         NOT NULL REFERENCES users (id),
  created_at         TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_medical_providers",
		SQL: `CREATE TABLE IF NOT EXISTS medical_providers (
  id         BIGSERIAL     PRIMARY KEY,
  family_id  UUID          NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  name       VARCHAR(255)  NOT NULL,
  specialty  VARCHAR(255),
  address    TEXT,
  phone      VARCHAR(50),
  email      VARCHAR(255),
  website    VARCHAR(500),
  latitude   NUMERIC(9, 6),
  longitude  NUMERIC(9, 6),
  zip_code   VARCHAR(20),
  notes      TEXT,
  created_at TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_medical_providers_family_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_medical_providers_family_name ON medical_providers (family_id, name);`,
	},
	{
		Name: "create_table_group_chats",
		SQL: `CREATE TABLE IF NOT EXISTS group_chats (
  id                 BIGSERIAL    PRIMARY KEY,
  family_id          UUID         NOT NULL REFERENCES families (id) ON DELETE CASCADE,
  contact_type       VARCHAR(20)  NOT NULL,
  contact_id         BIGINT       NOT NULL,
  group_identifier   VARCHAR(255) NOT NULL UNIQUE,
  created_by_user_id UUID         NOT NULL REFERENCES users (id),
  created_at         TIMESTAMPTZ  NOT NULL DEFAULT now(),
  UNIQUE (family_id, contact_type, contact_id)
);`,
	},
}

// EnsureMigrated creates the schema unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	start := time.Now()
	log = log.With("component", "database")

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", "msg_detail", "schema already exists", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	log.Info("db_migration_start", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", step.Name,
				"error", err,
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step", "migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	log.Info("db_migration_success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
