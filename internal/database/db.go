package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

func requireEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%s environment variable is required", name)
	}
	return v, nil
}

// EnsureDatabaseExists connects to the maintenance database with admin
// credentials and creates the application database when missing.
func EnsureDatabaseExists() error {
	host, err := requireEnv("DB_HOST")
	if err != nil {
		return err
	}
	port, err := requireEnv("DB_PORT")
	if err != nil {
		return err
	}
	adminUser, err := requireEnv("DB_ADMIN_USER")
	if err != nil {
		return err
	}
	adminPassword, err := requireEnv("DB_ADMIN_PASSWORD")
	if err != nil {
		return err
	}
	database, err := requireEnv("DB_DATABASE")
	if err != nil {
		return err
	}

	userInfo := url.UserPassword(adminUser, adminPassword)
	dsn := fmt.Sprintf("postgres://%s@%s:%s/postgres?sslmode=disable", userInfo.String(), host, port)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var exists bool
	err = pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", database).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		log.Printf("Database '%s' does not exist. Creating it...", database)
		// CREATE DATABASE cannot run in a transaction; quote the name to
		// handle special characters.
		createQuery := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{database}.Sanitize())
		if _, err := pool.Exec(ctx, createQuery); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		log.Printf("Database '%s' created successfully", database)
	}

	return nil
}

// Connect opens the application connection pool from DB_* environment
// variables and verifies it with a ping.
func Connect() (*pgxpool.Pool, error) {
	host, err := requireEnv("DB_HOST")
	if err != nil {
		return nil, err
	}
	port, err := requireEnv("DB_PORT")
	if err != nil {
		return nil, err
	}
	user, err := requireEnv("DB_USERNAME")
	if err != nil {
		return nil, err
	}
	password, err := requireEnv("DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	database, err := requireEnv("DB_DATABASE")
	if err != nil {
		return nil, err
	}

	userInfo := url.UserPassword(user, password)
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		userInfo.String(),
		host,
		port,
		url.PathEscape(database),
	)

	log.Printf("Connecting to database: postgres://%s:***@%s:%s/%s", user, host, port, database)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	Pool = pool
	log.Println("Database connection pool established successfully")
	return pool, nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		log.Println("Database connection pool closed")
	}
}
