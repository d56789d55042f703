package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"recruitconnect/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

// Connect opens the pool and verifies the database is reachable. It is fatal
// on failure: the API cannot serve anything without Postgres.
func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = DB.PingContext(ctx); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	log.Println("Connected to PostgreSQL.")
}

func Close() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed.")
	}
}
