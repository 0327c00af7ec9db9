package database

import (
	"context"
	"fmt"
	"time"
)

// PoolStats chứa snapshot thống kê connection pool (dùng cho /health)
type PoolStats struct {
	TotalConns      int32         `json:"total_connections"`
	IdleConns       int32         `json:"idle_connections"`
	AcquiredConns   int32         `json:"acquired_connections"`
	MaxConns        int32         `json:"max_connections"`
	AcquireCount    int64         `json:"acquire_count"`
	AvgAcquireTime  time.Duration `json:"avg_acquire_ns"`
	EmptyAcquires   int64         `json:"empty_acquire_count"`
	CanceledAcquire int64         `json:"canceled_acquire_count"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:      raw.TotalConns(),
		IdleConns:       raw.IdleConns(),
		AcquiredConns:   raw.AcquiredConns(),
		MaxConns:        raw.MaxConns(),
		AcquireCount:    raw.AcquireCount(),
		AvgAcquireTime:  calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
		EmptyAcquires:   raw.EmptyAcquireCount(),
		CanceledAcquire: raw.CanceledAcquireCount(),
	}, nil
}

// ServerVersion chạy SELECT version() để kiểm tra kết nối end-to-end
func (db *PostgresDB) ServerVersion(ctx context.Context) (string, error) {
	if db.Pool == nil {
		return "", fmt.Errorf("database pool is not initialized")
	}
	var version string
	if err := db.Pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}

func calculateAvgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}
