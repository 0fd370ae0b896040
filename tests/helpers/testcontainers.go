// This file is a helper for running tests against a real database in a container.
// It is used by the integration tests and by the standalone cmd/testcontainers executable.
// Expects DB_TYPE and DB_IMAGE, optionally loaded from a .env file.
//

package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/rentdb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	containerDatabase = "rentdb"
	containerUser     = "rentdb"
	containerPassword = "rentdb-pass"
	containerRootPass = "rentdb-root"
)

// TestContainers holds the network and database container of one test run
type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container
	DBType      string
	DBHost      string
	DBPort      string
}

// Terminate stops the containers, logging rather than failing on errors
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// Config returns an application configuration pointing at the container database
func (tc *TestContainers) Config() *config.Config {
	return &config.Config{
		UploadMaxBytes:    1 << 20,
		DBType:            tc.DBType,
		DBHost:            tc.DBHost,
		DBPort:            tc.DBPort,
		DBDatabase:        containerDatabase,
		DBUser:            containerUser,
		DBPassword:        containerPassword,
		DBConnectionLimit: 4,
		DBLogLevel:        "silent",
		JWTSecret:         "container-secret",
		TokenTTL:          time.Hour,
		TokenIssuer:       "rentdb-test",
		BcryptCost:        4,
	}
}

// SkipUnlessContainers skips the test in short mode or when no database image is configured
func SkipUnlessContainers(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	if os.Getenv("DB_IMAGE") == "" {
		t.Skip("DB_IMAGE is not set")
	}
}

// CreateDBContainer starts the database named by DB_TYPE from DB_IMAGE and waits until it listens
func CreateDBContainer(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{DBType: os.Getenv("DB_TYPE")}
	if tc.DBType == "" {
		tc.DBType = "mariadb"
	}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	tc.Network = nw

	cfg := &config.Config{DBType: tc.DBType}
	dbPort, err := nat.NewPort("tcp", cfg.DefaultDBPort())
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to create database port: %w", err)
	}

	env, dataDir, err := dbInitEnv(tc.DBType)
	if err != nil {
		tc.Terminate(t)
		return nil, err
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(dbPort)},
			Env:          env,
			// Data lives in memory; the container is thrown away after the run
			HostConfigModifier: func(hostConfig *container.HostConfig) {
				hostConfig.Tmpfs = map[string]string{dataDir: "rw"}
			},
			WaitingFor: wait.ForListeningPort(dbPort).WithStartupTimeout(90 * time.Second),
			Networks:   []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"db"},
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	tc.DBContainer = dbContainer

	host, err := dbContainer.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to get database host: %w", err)
	}
	mapped, err := dbContainer.MappedPort(ctx, dbPort)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to get database port: %w", err)
	}
	tc.DBHost = host
	tc.DBPort = mapped.Port()

	logMessage(t, "DB_TYPE=%s DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s DB_PASSWORD=%s",
		tc.DBType, tc.DBHost, tc.DBPort, containerDatabase, containerUser, containerPassword)
	return tc, nil
}

func dbInitEnv(dbType string) (map[string]string, string, error) {
	switch dbType {
	case "mysql", "mariadb":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": containerRootPass,
			"MYSQL_DATABASE":      containerDatabase,
			"MYSQL_USER":          containerUser,
			"MYSQL_PASSWORD":      containerPassword,
		}, "/var/lib/mysql", nil
	case "postgres", "postgresql":
		return map[string]string{
			"POSTGRES_DB":       containerDatabase,
			"POSTGRES_USER":     containerUser,
			"POSTGRES_PASSWORD": containerPassword,
		}, "/var/lib/postgresql/data", nil
	}
	return nil, "", fmt.Errorf("no container setup for DB_TYPE %s", dbType)
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
