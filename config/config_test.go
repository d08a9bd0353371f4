/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "/api/resources", cfg.Server.BasePath)
	assert.Equal(t, "/api-docs", cfg.Server.DocsPath)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Database.ConnectionConfig.Type)
	assert.True(t, cfg.Database.DataMigrateConfig.EnableMigrateOnStartup)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
server:
  port: 8088
  shutdown_timeout: 5s
database:
  connection:
    type: postgres
    host: db
    port: 5432
    dbname: resources
    slow_query_time: 500ms
  migrate:
    enable_migrate_on_startup: false
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, "/api/resources", cfg.Server.BasePath)
	assert.Equal(t, "postgres", cfg.Database.ConnectionConfig.Type)
	assert.Equal(t, "db", cfg.Database.ConnectionConfig.Host)
	assert.Equal(t, 500*time.Millisecond, cfg.Database.ConnectionConfig.SlowQueryTime)
	assert.False(t, cfg.Database.DataMigrateConfig.EnableMigrateOnStartup)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "server:\n  port: 8088\n")
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_PATH", "/v2/resources")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DB_LOG_LEVEL", "error")
	t.Setenv("DB_TYPE", "mysql")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/v2/resources", cfg.Server.BasePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "error", cfg.Log.Database)
	assert.Equal(t, "mysql", cfg.Database.ConnectionConfig.Type)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := map[string]string{
		"port":      "server:\n  port: 70000\n",
		"base path": "server:\n  base_path: api\n",
		"db type":   "database:\n  connection:\n    type: oracle\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read config file")
}
