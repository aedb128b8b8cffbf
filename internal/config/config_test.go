// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/tms.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/tms.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.BatchSize)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want gpt-4o-mini", cfg.OpenAIModel)
	}
	if cfg.ProviderEnabled() {
		t.Error("ProviderEnabled() should be false without an API key")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be false without a Redis URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "TMS_DB_PATH", "/custom/path.db")
	setEnv(t, "TMS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "TMS_SERVER_PORT", "3000")
	setEnv(t, "TMS_ENV", "production")
	setEnv(t, "TMS_OPENAI_API_KEY", "sk-test")
	setEnv(t, "TMS_BATCH_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want 0.0.0.0:3000", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false for production")
	}
	if !cfg.ProviderEnabled() {
		t.Error("ProviderEnabled() should be true with an API key")
	}
	if cfg.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want 25", cfg.BatchSize)
	}
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	os.Clearenv()
	setEnv(t, "TMS_BATCH_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a zero batch size")
	}
}
