// integration_test.go
//
// MovieWeb, a service for keeping users and the movies they like, with OMDb lookups
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieweb.
// movieweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieweb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/movieweb/internal/config"
	"github.com/localnerve/movieweb/internal/database"
	"github.com/localnerve/movieweb/internal/models"
	"github.com/localnerve/movieweb/internal/services"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// dbInitEnv returns the container environment that creates the test database for dbType
func dbInitEnv(dbType string) map[string]string {
	switch dbType {
	case "postgres":
		return map[string]string{
			"POSTGRES_USER":     "movieweb",
			"POSTGRES_PASSWORD": "movieweb",
			"POSTGRES_DB":       "movies",
		}
	case "sqlserver":
		return map[string]string{
			"ACCEPT_EULA":       "Y",
			"MSSQL_SA_PASSWORD": "Movieweb-Passw0rd",
		}
	}
	return map[string]string{
		"MARIADB_ROOT_PASSWORD": "movieweb",
		"MARIADB_DATABASE":      "movies",
		"MARIADB_USER":          "movieweb",
		"MARIADB_PASSWORD":      "movieweb",
		"MYSQL_ROOT_PASSWORD":   "movieweb",
		"MYSQL_DATABASE":        "movies",
		"MYSQL_USER":            "movieweb",
		"MYSQL_PASSWORD":        "movieweb",
	}
}

func defaultDBPort(dbType string) string {
	switch dbType {
	case "postgres":
		return "5432"
	case "sqlserver":
		return "1433"
	}
	return "3306"
}

// startDatabase runs DB_IMAGE and returns a config pointing at it.
// DB_TYPE selects the dialect and defaults to mysql.
func startDatabase(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "mysql"
	}
	tcpDBPort, err := nat.NewPort("tcp", defaultDBPort(dbType))
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(tcpDBPort)},
			Env:          dbInitEnv(dbType),
			WaitingFor:   wait.ForListeningPort(tcpDBPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start database: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate database: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get database host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpDBPort)
	if err != nil {
		t.Fatalf("Failed to get database port: %v", err)
	}

	cfg := &config.Config{
		DBType:            dbType,
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "movies",
		DBUser:            "movieweb",
		DBPassword:        "movieweb",
		DBConnectionLimit: 5,
		DBLogLevel:        "silent",
	}
	if dbType == "sqlserver" {
		cfg.DBUser = "sa"
		cfg.DBPassword = "Movieweb-Passw0rd"
		cfg.DBDatabase = "master"
	}
	return cfg
}

// connectWithRetry waits out the window between the port opening and the server accepting logins
func connectWithRetry(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err := database.Connect(cfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil && sqlDB.Ping() == nil {
				return db
			}
			_ = database.Close(db)
		}
		if time.Now().After(deadline) {
			t.Fatalf("Failed to connect to %s: %v", cfg.DBType, err)
		}
		time.Sleep(time.Second)
	}
}

func TestDataManagerAgainstServer(t *testing.T) {
	if testing.Short() || os.Getenv("DB_IMAGE") == "" {
		t.Skip("set DB_IMAGE (and DB_TYPE) to run against a containerized database")
	}

	cfg := startDatabase(t)
	db := connectWithRetry(t, cfg)
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	dm := services.NewSQLDataManager(db)
	ctx := context.Background()

	ada, err := dm.AddUser(ctx, &models.User{Name: "Ada"})
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if _, err := dm.AddUser(ctx, &models.User{Name: "Ada"}); !errors.Is(err, services.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}

	year := 2021
	movie, err := dm.AddMovie(ctx, ada.ID, services.MovieInput{
		Name:     "Dune",
		Year:     &year,
		Metadata: []byte(`{"Title":"Dune"}`),
	})
	if err != nil {
		t.Fatalf("AddMovie failed: %v", err)
	}

	stored, err := dm.GetMovie(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetMovie failed: %v", err)
	}
	if stored.Metadata.IsNull() {
		t.Error("Expected metadata to round trip")
	}

	removed, err := dm.DeleteUser(ctx, ada.ID)
	if err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 movie removed, got %d", removed)
	}
	if _, err := dm.GetMovie(ctx, movie.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected movie removed with its user, got %v", err)
	}
}
