package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"ecohub.backend/internal/config"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origOpenDB := openDB
	origRunServer := runServer
	origGetStdDB := getStdDB

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		openDB = origOpenDB
		runServer = origRunServer
		getStdDB = origGetStdDB
	})
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "ecohub",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL: "redis://localhost:6379",
		},
		JWT: config.JWTConfig{
			Secret: "secret",
			Expiry: 24 * time.Hour,
		},
		Cookie: config.CookieConfig{
			SameSite: "lax",
		},
		RateLimit: config.RateLimitConfig{
			Backend:  "memory",
			Requests: 5,
			Window:   time.Minute,
		},
	}
}

func openTestDB(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_UnknownRateLimitBackend(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.RateLimit.Backend = "carrier-pigeon"
		return cfg
	}
	openDB = func(string) (*gorm.DB, error) { return openTestDB("main_backend_err") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected unknown backend error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	openDB = func(string) (*gorm.DB, error) { return openTestDB("main_server_err") }
	runServer = func(*http.Server) error { return errors.New("listen failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig

	var srv *http.Server
	openDB = func(string) (*gorm.DB, error) { return openTestDB("main_success") }
	runServer = func(s *http.Server) error {
		srv = s
		return nil
	}

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil {
		t.Fatal("server was never handed to runServer")
	}
	if srv.Addr != ":18080" {
		t.Fatalf("unexpected listen address %q", srv.Addr)
	}
	if srv.Handler == nil {
		t.Fatal("server has no handler")
	}
}
