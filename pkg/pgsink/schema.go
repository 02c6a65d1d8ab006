package pgsink

import "context"

const (
	credentialsTable = "user_credentials"
	followsTable     = "user_follows"
)

// migrate creates the seed tables
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_credentials (
		user_id VARCHAR(100) PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_follows (
		follower_id VARCHAR(100) NOT NULL REFERENCES user_credentials(user_id) ON DELETE CASCADE,
		followed_id VARCHAR(100) NOT NULL REFERENCES user_credentials(user_id) ON DELETE CASCADE,
		PRIMARY KEY (follower_id, followed_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_follows_followed_id ON user_follows(followed_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}
