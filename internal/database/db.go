// Package database opens and verifies the MySQL connection pool the
// repositories run on.
package database

import (
    "context"
    "database/sql"
    "fmt"
    "log"
    "time"

    _ "github.com/go-sql-driver/mysql"
)

// pingAttempts covers the window where the app container comes up
// before the database does.
const pingAttempts = 5

// DSN assembles a MySQL connection string.  parseTime=true maps
// DATETIME columns onto time.Time and loc=UTC keeps departure times
// consistent regardless of server timezone.
func DSN(user, pass, host, port, name string) string {
    auth := user
    if pass != "" {
        auth = user + ":" + pass
    }
    return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
        auth, host, port, name)
}

// Open connects to MySQL, tunes the pool and verifies the connection.
// The ping is retried with a short delay so a database still booting
// does not kill the server.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    db, err := sql.Open("mysql", DSN(user, pass, host, port, name))
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(25)
    db.SetMaxIdleConns(25)
    db.SetConnMaxLifetime(30 * time.Minute)

    var lastErr error
    for attempt := 1; attempt <= pingAttempts; attempt++ {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        lastErr = db.PingContext(ctx)
        cancel()
        if lastErr == nil {
            return db, nil
        }
        log.Printf("database: ping attempt %d/%d failed: %v", attempt, pingAttempts, lastErr)
        time.Sleep(2 * time.Second)
    }
    _ = db.Close()
    return nil, fmt.Errorf("database unreachable: %w", lastErr)
}
