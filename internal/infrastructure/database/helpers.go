package database

import (
	"context"
	"fmt"
	"time"

	"toolsail-backend/pkg/logger"
)

// Ping kiểm tra database còn sống, dùng cho /api/health
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close đóng pool. Gọi nhiều lần là no-op.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}
	db.Pool.Close()
	db.Pool = nil
	logger.Info("PostgreSQL pool closed", nil)
}

// PoolStats là snapshot thống kê connection pool
type PoolStats struct {
	AcquiredConns        int32
	IdleConns            int32
	TotalConns           int32
	MaxConns             int32
	AcquireCount         int64
	AcquireDuration      time.Duration
	CanceledAcquireCount int64
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:        raw.AcquiredConns(),
		IdleConns:            raw.IdleConns(),
		TotalConns:           raw.TotalConns(),
		MaxConns:             raw.MaxConns(),
		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
	}, nil
}

// MonitorPoolHealth log cảnh báo khi pool gần cạn. Chạy trong goroutine riêng.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				logger.Error("Failed to read pool stats", err)
				continue
			}

			if stats.MaxConns > 0 {
				utilization := float64(stats.AcquiredConns) / float64(stats.MaxConns) * 100
				if utilization > 80 {
					logger.Warn("High database pool utilization", map[string]interface{}{
						"utilization_pct": utilization,
						"acquired":        stats.AcquiredConns,
						"max":             stats.MaxConns,
					})
				}
			}

			if stats.AcquireCount > 0 {
				avg := stats.AcquireDuration / time.Duration(stats.AcquireCount)
				if avg > 100*time.Millisecond {
					logger.Warn("High database acquire latency", map[string]interface{}{
						"avg_acquire": avg.String(),
					})
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
