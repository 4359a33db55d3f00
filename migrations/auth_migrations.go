package migrations

import "gorm.io/gorm"

func GetAuthMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_10_000000_create_auth_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS users (
						id BIGSERIAL PRIMARY KEY,
						email VARCHAR(255) NOT NULL,
						password VARCHAR(255) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
					CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS refresh_tokens (
						id BIGSERIAL PRIMARY KEY,
						user_id BIGINT NOT NULL,
						token VARCHAR(255) NOT NULL,
						expires_at TIMESTAMP NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_refresh_tokens_token ON refresh_tokens(token);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_deleted_at ON refresh_tokens(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS refresh_tokens CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS users CASCADE").Error
			},
		},
	}
}
