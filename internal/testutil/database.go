package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. It expects a MySQL
// instance on localhost:3306 with a database named 'brigade_test' and
// skips the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/brigade_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "OrderCounters", "MenuItems"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createMenuItemsTable := `
	CREATE TABLE IF NOT EXISTS MenuItems (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		category VARCHAR(100),
		price DECIMAL(10,2) NOT NULL,
		prepTimeMinutes INT NOT NULL DEFAULT 0,
		available TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		number VARCHAR(20) NOT NULL,
		tableId VARCHAR(36) NOT NULL,
		status VARCHAR(20) NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0,
		tax DECIMAL(10,2) NOT NULL DEFAULT 0,
		discount DECIMAL(10,2) NOT NULL DEFAULT 0,
		total DECIMAL(10,2) NOT NULL DEFAULT 0,
		customerName VARCHAR(255) NOT NULL DEFAULT '',
		customerCount INT NOT NULL DEFAULT 0,
		specialRequests TEXT,
		createdBy VARCHAR(36) NOT NULL DEFAULT '',
		createdAt DATETIME NOT NULL,
		updatedAt DATETIME NOT NULL,
		completedAt DATETIME NULL,
		INDEX idx_status (status),
		INDEX idx_table (tableId)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		orderId VARCHAR(36) NOT NULL,
		menuItemId VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		prepTimeMinutes INT NOT NULL DEFAULT 0,
		quantity INT NOT NULL,
		status VARCHAR(20) NOT NULL,
		specialInstructions TEXT,
		preparedBy VARCHAR(36) NOT NULL DEFAULT '',
		preparedAt DATETIME NULL,
		INDEX idx_order (orderId)
	)`

	createOrderCountersTable := `
	CREATE TABLE IF NOT EXISTS OrderCounters (
		name VARCHAR(50) NOT NULL PRIMARY KEY,
		value BIGINT NOT NULL
	)`

	for _, query := range []string{createMenuItemsTable, createOrdersTable, createOrderItemsTable, createOrderCountersTable} {
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("failed to create test table: %v", err)
		}
	}
}
