package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_10_000001_create_core_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS clans (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(255) NOT NULL,
						owner_id BIGINT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_clans_slug ON clans(slug);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_clans_owner_id ON clans(owner_id);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_clans_name_ci ON clans(LOWER(name));
				`).Error; err != nil {
					return err
				}

				// wars holds the fixed-length slot array as JSONB; slot
				// ranges are enforced by the service layer, not the schema.
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						clan_id BIGINT NOT NULL,
						name VARCHAR(255) NOT NULL,
						wars JSONB NOT NULL DEFAULT '[]'::jsonb,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (clan_id) REFERENCES clans(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_players_clan_id ON players(clan_id);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS players CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS clans CASCADE").Error
			},
		},
	}
}
