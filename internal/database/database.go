// Package database opens the Postgres handle shared by every store.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool bounds the shared connection pool. Zero values fall back to modest
// limits suited to a single-instance deployment.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

func (p Pool) normalized() Pool {
	if p.MaxOpen <= 0 {
		p.MaxOpen = 20
	}

	if p.MaxIdle <= 0 {
		p.MaxIdle = 4
	}

	if p.MaxLifetime <= 0 {
		p.MaxLifetime = 30 * time.Minute
	}

	return p
}

func New(connStr string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening postgres handle: %w", err)
	}

	pool = pool.normalized()
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reaching postgres: %w", err)
	}

	return db, nil
}
