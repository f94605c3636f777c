//go:build integration

// Package pgtest поднимает postgres в контейнере для интеграционных тестов репозиториев
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName     = "test_team_scheduling"
	dbUser     = "test_user"
	dbPassword = "test_password"
)

// Start запускает контейнер, подключается и применяет схему
// Возвращаемая функция останавливает контейнер и закрывает соединение
func Start(ctx context.Context) (*sql.DB, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       dbName,
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start container: %w", err)
	}

	terminate := func() {
		_ = container.Terminate(context.Background())
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("container port: %w", err)
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), dbUser, dbPassword, dbName)

	var db *sql.DB
	for attempt := 0; attempt < 5; attempt++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				break
			}
			db.Close()
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			terminate()
			return nil, nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return db, func() {
		db.Close()
		terminate()
	}, nil
}

// Truncate очищает все таблицы сервиса
func Truncate(db *sql.DB) error {
	_, err := db.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ") + " RESTART IDENTITY CASCADE")
	return err
}
