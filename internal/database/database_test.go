package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DBType:            "sqlite",
		DBDatabase:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
	}
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		path string
		pure bool
		want string
	}{
		{"rent.db", true, "rent.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{"rent.db", false, "rent.db?_busy_timeout=5000&_journal_mode=WAL"},
		{":memory:", true, ":memory:?_pragma=busy_timeout(5000)"},
		{"file:x?mode=memory&cache=shared", true, "file:x?mode=memory&cache=shared&_pragma=busy_timeout(5000)"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.path, tt.pure), func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.path, tt.pure))
		})
	}
}

func TestDialector(t *testing.T) {
	for dbType, name := range map[string]string{
		"sqlite":    "sqlite",
		"sqlite3":   "sqlite",
		"mysql":     "mysql",
		"mariadb":   "mysql",
		"postgres":  "postgres",
		"sqlserver": "sqlserver",
	} {
		cfg := &config.Config{DBType: dbType, DBHost: "localhost", DBUser: "u", DBDatabase: "rent"}
		dialector, err := Dialector(cfg)
		require.NoError(t, err, dbType)
		assert.Equal(t, name, dialector.Name(), dbType)
	}

	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: 1062})))
	assert.False(t, IsDuplicateKey(&mysqldriver.MySQLError{Number: 1452}))
	assert.True(t, IsDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: users.username")))
}

func TestConnectMigrateAndSeed(t *testing.T) {
	cfg := memoryConfig()
	db, err := Connect(cfg, nil)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, AutoMigrate(db), "migration is repeatable")

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}

	hash := func(plain string) (string, error) { return "digest:" + plain, nil }

	created, err := SeedAdmin(db, "admin", "admin123", hash)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(db, "admin", "admin123", hash)
	require.NoError(t, err)
	assert.False(t, created, "seeding only happens on an empty users table")

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "digest:admin123", admin.Password)

	// Unique violations surface as gorm.ErrDuplicatedKey through TranslateError
	err = db.Create(&models.User{Username: "admin", Password: "x", Role: models.RoleOperator, Status: models.UserActive, Language: "fr"}).Error
	assert.True(t, IsDuplicateKey(err), "got %v", err)
}

// The pure driver opens the same memory database the dialector builds
func TestPureDriverOpens(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(":memory:", true)), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}
