package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection. DATABASE_URL is a
// driver DSN (user:pass@tcp(host:port)/name); an optional mysql:// scheme
// prefix is tolerated. parseTime and a UTC location are forced so DATETIME
// columns scan into consistent time.Time values.
func Open(databaseURL string) (*sql.DB, error) {
	dsn := strings.TrimPrefix(databaseURL, "mysql://")
	if !strings.Contains(dsn, "?") {
		dsn += "?charset=utf8mb4&parseTime=true&loc=UTC"
	} else if !strings.Contains(dsn, "parseTime") {
		dsn += "&parseTime=true&loc=UTC"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
