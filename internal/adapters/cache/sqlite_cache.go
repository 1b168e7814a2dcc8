package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

// SQLiteCache is a SQLite implementation of the ReputationCache port.
type SQLiteCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteCache creates a new SQLite reputation cache.
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS domain_reputation (
			domain TEXT PRIMARY KEY,
			age_days INTEGER,
			ssl_valid BOOLEAN,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reputation_expires_at ON domain_reputation(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	cache := &SQLiteCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves the cached reputation for a domain.
func (c *SQLiteCache) Get(ctx context.Context, domain string) (*core.ReputationEntry, error) {
	var ageDays sql.NullInt64
	var sslValid bool
	var lastSeen, expiresAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT age_days, ssl_valid, last_seen, expires_at
		FROM domain_reputation
		WHERE domain = ? AND expires_at > datetime('now')
	`, domain).Scan(&ageDays, &sslValid, &lastSeen, &expiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		c.logger.Error("Failed to query reputation cache", zap.Error(err), zap.String("domain", domain))
		return nil, err
	}

	entry := &core.ReputationEntry{
		Domain:   domain,
		SSLValid: sslValid,
	}
	if ageDays.Valid {
		age := int(ageDays.Int64)
		entry.AgeDays = &age
	}
	if seen, err := time.Parse(time.RFC3339, lastSeen); err == nil {
		entry.LastSeen = seen
	}
	if exp, err := time.Parse(time.RFC3339, expiresAt); err == nil {
		entry.ExpiresAt = exp
	}

	return entry, nil
}

// Set stores a reputation entry.
func (c *SQLiteCache) Set(ctx context.Context, entry *core.ReputationEntry) error {
	var ageDays sql.NullInt64
	if entry.AgeDays != nil {
		ageDays = sql.NullInt64{Int64: int64(*entry.AgeDays), Valid: true}
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO domain_reputation (domain, age_days, ssl_valid, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Domain, ageDays, entry.SSLValid,
		entry.LastSeen.Format(time.RFC3339), entry.ExpiresAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert reputation entry: %w", err)
	}
	return nil
}

// Delete removes a domain's entry.
func (c *SQLiteCache) Delete(ctx context.Context, domain string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM domain_reputation
		WHERE domain = ?
	`, domain)

	if err != nil {
		return fmt.Errorf("failed to delete reputation entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries.
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM domain_reputation
		WHERE expires_at <= datetime('now')
	`)

	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		c.logger.Debug("Cleaned up expired reputation entries", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

func (c *SQLiteCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the database.
func (c *SQLiteCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
