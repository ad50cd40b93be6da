package db

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by every store the server can run on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolStats represents database connection pool statistics.
type PoolStats struct {
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	AcquireCount  int64  `json:"acquire_count"`
	WaitDuration  string `json:"wait_duration"`
}

// StatsFunc reports pool statistics for the health endpoint.
type StatsFunc func() *PoolStats

// PGXStats reads statistics from a pgx pool.
func PGXStats(pool *pgxpool.Pool) StatsFunc {
	return func() *PoolStats {
		stat := pool.Stat()
		return &PoolStats{
			TotalConns:    stat.TotalConns(),
			IdleConns:     stat.IdleConns(),
			AcquiredConns: stat.AcquiredConns(),
			MaxConns:      stat.MaxConns(),
			AcquireCount:  stat.AcquireCount(),
			WaitDuration:  stat.AcquireDuration().String(),
		}
	}
}

// SQLStats reads statistics from a database/sql handle, as used by gorm.
func SQLStats(db *sql.DB) StatsFunc {
	return func() *PoolStats {
		stat := db.Stats()
		return &PoolStats{
			TotalConns:    int32(stat.OpenConnections),
			IdleConns:     int32(stat.Idle),
			AcquiredConns: int32(stat.InUse),
			MaxConns:      int32(stat.MaxOpenConnections),
			AcquireCount:  stat.WaitCount,
			WaitDuration:  stat.WaitDuration.String(),
		}
	}
}

// HealthHandler pings the store and reports its pool statistics. The
// ping error itself is not exposed.
func HealthHandler(driver string, p Pinger, stats StatsFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		body := map[string]interface{}{"driver": driver}
		if stats != nil {
			body["pool"] = stats()
		}

		if err := p.Ping(ctx); err != nil {
			body["status"] = "unhealthy"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["status"] = "healthy"
		return c.JSON(http.StatusOK, body)
	}
}
