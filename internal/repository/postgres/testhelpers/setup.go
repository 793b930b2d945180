package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/repository/postgres"
)

// mutableTables - таблицы с данными тестов; regions заполняется миграцией и не очищается
var mutableTables = []string{
	"trip_likes",
	"saved_routes",
	"trip_photos",
	"trips",
	"photos",
	"routes",
	"user_identities",
	"users",
}

// TestDB - подключение к тестовой базе
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
	Config config.DatabaseConfig
}

// SetupTestDB подключается к тестовой базе из TEST_DB_* переменных.
// Тест пропускается, если база недоступна.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	port, _ := strconv.Atoi(getEnv("TEST_DB_PORT", "5433"))
	cfg := config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "routes_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	// контейнер с базой может подниматься параллельно с тестами
	var db *sqlx.DB
	var err error
	delay := 200 * time.Millisecond
	const attempts = 3

	for i := 1; i <= attempts; i++ {
		if db, err = sqlx.Connect("postgres", dsn); err == nil {
			break
		}
		if i < attempts {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i, attempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	if err != nil {
		t.Skipf("Test database not available after %d attempts: %v", attempts, err)
	}

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
		Config: cfg,
	}
}

// Migrate применяет встроенные миграции сервиса через golang-migrate
func (tdb *TestDB) Migrate() error {
	url := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		tdb.Config.User, tdb.Config.Password, tdb.Config.Host, tdb.Config.Port,
		tdb.Config.DBName, tdb.Config.SSLMode,
	)
	return postgres.RunMigrations(url, tdb.Logger)
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup очищает все таблицы с данными одним TRUNCATE
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(mutableTables, ", "))
	if _, err := tdb.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate test tables: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
