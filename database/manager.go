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

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type defaultDatabaseManager struct {
	config    *ConnectionConfig
	db        *bun.DB
	sqlDB     *sql.DB
	logger    Logger
	mu        sync.RWMutex
	connected bool
	lastError error
	// hooks are attached to every handle the manager dials.
	hooks []bun.QueryHook
	// stopWatch cancels the health watcher started by Connect.
	stopWatch context.CancelFunc
}

// NewDatabaseManager returns an AbstractDatabaseManager backed by Bun.
// A nil config uses DefaultConnectionConfig.
func NewDatabaseManager(config *ConnectionConfig) AbstractDatabaseManager {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &defaultDatabaseManager{config: config, logger: GetLogger()}
}

func (dm *defaultDatabaseManager) Connect(ctx context.Context) error {
	if err := dm.open(ctx); err != nil {
		return err
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.config.HealthCheckInterval > 0 && dm.stopWatch == nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		dm.stopWatch = cancel
		go dm.watch(watchCtx)
	}
	return nil
}

// open dials the database unless a connection is already held.
func (dm *defaultDatabaseManager) open(ctx context.Context) error {
	dm.mu.RLock()
	held := dm.connected && dm.db != nil
	dm.mu.RUnlock()
	if held {
		return nil
	}

	sqlDB, db, err := dm.dial(ctx)
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if err != nil {
		dm.lastError = err
		return err
	}
	dm.sqlDB, dm.db = sqlDB, db
	dm.connected = true
	dm.lastError = nil
	dm.logger.Info("Database connected successfully", "type", dm.config.Type, "host", dm.config.Host)
	return nil
}

// dial opens and pings a new handle carrying the registered models and the
// manager's query hooks.
func (dm *defaultDatabaseManager) dial(ctx context.Context) (*sql.DB, *bun.DB, error) {
	sqlDB, db, err := dm.createConnection()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	dm.configureConnectionPool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, dm.config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database connection test failed: %w", err)
	}
	return sqlDB, db, nil
}

func (dm *defaultDatabaseManager) createConnection() (*sql.DB, *bun.DB, error) {
	var sqlDB *sql.DB
	var db *bun.DB
	var err error

	if dm.config.ConnectTimeout.Seconds() <= 0 {
		dm.config.ConnectTimeout = 30 * time.Second
	}

	switch dm.config.Type {
	case "mysql":
		sqlDB, db, err = dm.createMySQLConnection()
	case "postgres", "postgresql":
		sqlDB, db, err = dm.createPostgreSQLConnection()
	case "sqlite", "sqlite3":
		sqlDB, db, err = dm.createSQLiteConnection()
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", dm.config.Type)
	}

	if err != nil {
		return nil, nil, err
	}

	if dm.config.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	if dm.config.SlowQueryTime > 0 {
		db.AddQueryHook(NewSlowQueryHook(dm.config.SlowQueryTime, dm.logger))
	}

	dm.mu.RLock()
	for _, hook := range dm.hooks {
		db.AddQueryHook(hook)
	}
	dm.mu.RUnlock()
	db.RegisterModel(RegisteredModelInstances()...)

	return sqlDB, db, nil
}

// clientFoundRows makes UPDATE report matched rows, so an update that writes
// identical values is not mistaken for a missing row.
func (dm *defaultDatabaseManager) createMySQLConnection() (*sql.DB, *bun.DB, error) {
	dsn := dm.config.DSN
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true&timeout=%s&readTimeout=%s&writeTimeout=%s",
			dm.config.Username,
			dm.config.Password,
			dm.config.Host,
			dm.config.Port,
			dm.config.DBName,
			dm.config.ConnectTimeout,
			dm.config.ReadTimeout,
			dm.config.WriteTimeout,
		)
	}

	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, mysqldialect.New())
	return sqlDB, db, nil
}

func (dm *defaultDatabaseManager) createPostgreSQLConnection() (*sql.DB, *bun.DB, error) {
	dsn := dm.config.DSN
	if dsn == "" {
		sslMode := dm.config.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
			url.QueryEscape(dm.config.Username),
			url.QueryEscape(dm.config.Password),
			dm.config.Host,
			dm.config.Port,
			dm.config.DBName,
			sslMode,
			int(dm.config.ConnectTimeout.Seconds()),
		)
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	return sqlDB, db, nil
}

func (dm *defaultDatabaseManager) createSQLiteConnection() (*sql.DB, *bun.DB, error) {
	dsn := dm.config.DSN
	if dsn == "" {
		dsn = fmt.Sprintf("%s.db", dm.config.DBName)
	}

	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return sqlDB, db, nil
}

func (dm *defaultDatabaseManager) configureConnectionPool(sqlDB *sql.DB) {

	// sqlite allows a single writer, and an in-memory database lives only as
	// long as its connection.
	if isSQLite(dm.config.Type) {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}

	sqlDB.SetMaxIdleConns(dm.config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dm.config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dm.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(dm.config.ConnMaxIdleTime)
}

// Disconnect stops the health watcher and closes the connection.
func (dm *defaultDatabaseManager) Disconnect() error {
	dm.mu.Lock()
	stop := dm.stopWatch
	dm.stopWatch = nil
	dm.mu.Unlock()
	if stop != nil {
		stop()
	}
	return dm.close()
}

func (dm *defaultDatabaseManager) close() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.db == nil {
		return nil
	}
	err := dm.db.Close()
	dm.db = nil
	dm.sqlDB = nil
	dm.connected = false

	if err != nil {
		dm.logger.Error("Failed to close database connection", "error", err)
	} else {
		dm.logger.Info("Database connection closed")
	}
	return err
}

// Reconnect dials a new handle and swaps it in once it answers a ping. The
// previous handle stays in place when dialing fails. The health watcher keeps
// running.
func (dm *defaultDatabaseManager) Reconnect(ctx context.Context) error {
	dm.logger.Info("Attempting to reconnect to the database")
	sqlDB, db, err := dm.dial(ctx)
	if err != nil {
		dm.mu.Lock()
		dm.lastError = err
		dm.mu.Unlock()
		return err
	}

	dm.mu.Lock()
	old := dm.db
	dm.sqlDB, dm.db = sqlDB, db
	dm.connected = true
	dm.lastError = nil
	dm.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			dm.logger.Warn("Error closing previous connection", "error", err)
		}
	}
	dm.logger.Info("Database reconnected", "type", dm.config.Type, "host", dm.config.Host)
	return nil
}

// AddQueryHook attaches hook to the current handle and to every handle dialed
// by later reconnects.
func (dm *defaultDatabaseManager) AddQueryHook(hook bun.QueryHook) {
	if hook == nil {
		return
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.hooks = append(dm.hooks, hook)
	if dm.db != nil {
		dm.db.AddQueryHook(hook)
	}
}

func (dm *defaultDatabaseManager) Ping(ctx context.Context) error {
	dm.mu.RLock()
	db := dm.db
	dm.mu.RUnlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	return db.PingContext(ctx)
}

func (dm *defaultDatabaseManager) GetDB() *bun.DB {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.db
}

func (dm *defaultDatabaseManager) GetSQLDB() *sql.DB {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.sqlDB
}

func (dm *defaultDatabaseManager) HealthCheck(ctx context.Context) *HealthStatus {
	dm.mu.RLock()
	db, sqlDB := dm.db, dm.sqlDB
	dm.mu.RUnlock()

	start := time.Now()
	status := &HealthStatus{LastCheckTime: start}
	if db == nil {
		status.LastError = "Database not initialized"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := db.PingContext(pingCtx)
	status.ResponseTime = time.Since(start)

	stats := sqlDB.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections

	dm.mu.Lock()
	defer dm.mu.Unlock()
	if err != nil {
		status.LastError = err.Error()
		dm.lastError = err
		dm.connected = false
		return status
	}
	status.Healthy = true
	status.Connected = true
	dm.lastError = nil
	dm.connected = true
	return status
}

// watch pings the database every HealthCheckInterval and reconnects when a
// check fails and reconnects are enabled.
func (dm *defaultDatabaseManager) watch(ctx context.Context) {
	ticker := time.NewTicker(dm.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			status := dm.HealthCheck(checkCtx)
			cancel()
			if !status.Healthy && dm.config.EnableReconnect {
				dm.reconnectWithBackoff(ctx)
			}
		}
	}
}

func (dm *defaultDatabaseManager) reconnectWithBackoff(ctx context.Context) {
	tries := 0
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(dm.config.ReconnectInterval), uint64(dm.config.MaxReconnectTries)),
		ctx,
	)
	err := backoff.Retry(func() error {
		tries++
		dialCtx, cancel := context.WithTimeout(ctx, dm.config.ConnectTimeout)
		defer cancel()
		err := dm.Reconnect(dialCtx)
		if err != nil {
			dm.logger.Error("Reconnect failed", "error", err, "try", tries)
		}
		return err
	}, b)
	if err != nil {
		dm.logger.Error("Max reconnect attempts reached, stopping", "tries", tries)
		return
	}
	dm.logger.Info("Reconnect succeeded", "tries", tries)
}

func (dm *defaultDatabaseManager) GetStats() *DBStats {
	dm.mu.RLock()
	sqlDB := dm.sqlDB
	dm.mu.RUnlock()

	if sqlDB == nil {
		return &DBStats{}
	}

	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

func (dm *defaultDatabaseManager) RunMigrations(ctx context.Context) error {
	db := dm.GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	return NewMigrationManager(db, dm.logger).RunMigrations(ctx)
}

func (dm *defaultDatabaseManager) SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.logger = logger
}

func isSQLite(typ string) bool {
	return typ == "sqlite" || typ == "sqlite3"
}
