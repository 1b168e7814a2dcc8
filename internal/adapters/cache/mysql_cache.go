package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

// MySQLCache is a MySQL implementation of the ReputationCache port.
type MySQLCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLCache creates a new MySQL reputation cache.
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS domain_reputation (
			domain VARCHAR(255) PRIMARY KEY,
			age_days INT NULL,
			ssl_valid BOOLEAN,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP,
			INDEX idx_reputation_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	cache := &MySQLCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves the cached reputation for a domain.
func (c *MySQLCache) Get(ctx context.Context, domain string) (*core.ReputationEntry, error) {
	var ageDays sql.NullInt64
	var sslValid bool
	var lastSeen, expiresAt time.Time

	err := c.db.QueryRowContext(ctx, `
		SELECT age_days, ssl_valid, last_seen, expires_at
		FROM domain_reputation
		WHERE domain = ? AND expires_at > NOW()
	`, domain).Scan(&ageDays, &sslValid, &lastSeen, &expiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		c.logger.Error("Failed to query reputation cache", zap.Error(err), zap.String("domain", domain))
		return nil, err
	}

	entry := &core.ReputationEntry{
		Domain:    domain,
		SSLValid:  sslValid,
		LastSeen:  lastSeen,
		ExpiresAt: expiresAt,
	}
	if ageDays.Valid {
		age := int(ageDays.Int64)
		entry.AgeDays = &age
	}

	return entry, nil
}

// Set stores a reputation entry.
func (c *MySQLCache) Set(ctx context.Context, entry *core.ReputationEntry) error {
	var ageDays sql.NullInt64
	if entry.AgeDays != nil {
		ageDays = sql.NullInt64{Int64: int64(*entry.AgeDays), Valid: true}
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO domain_reputation (domain, age_days, ssl_valid, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			age_days = VALUES(age_days),
			ssl_valid = VALUES(ssl_valid),
			last_seen = VALUES(last_seen),
			expires_at = VALUES(expires_at)
	`, entry.Domain, ageDays, entry.SSLValid, entry.LastSeen, entry.ExpiresAt)

	if err != nil {
		return fmt.Errorf("failed to insert reputation entry: %w", err)
	}
	return nil
}

// Delete removes a domain's entry.
func (c *MySQLCache) Delete(ctx context.Context, domain string) error {
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
func (c *MySQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM domain_reputation
		WHERE expires_at <= NOW()
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

func (c *MySQLCache) startCleanupTask() {
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
func (c *MySQLCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
