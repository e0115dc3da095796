package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "migrations"

func TestValidateMigrationsDir(t *testing.T) {
	if err := ValidateDir(migrationsDir); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestInitSchemaCoversCoreTables(t *testing.T) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var initSQL string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_init_schema.sql") {
			b, err := os.ReadFile(filepath.Join(migrationsDir, e.Name()))
			if err != nil {
				t.Fatalf("read init migration: %v", err)
			}
			initSQL = string(b)
		}
	}
	if initSQL == "" {
		t.Fatal("init schema migration not found")
	}

	for _, table := range []string{
		"categories",
		"products",
		"product_sizes",
		"states",
		"orders",
		"order_items",
		"gallery_items",
		"reviews",
		"admin_users",
	} {
		if !strings.Contains(initSQL, "CREATE TABLE "+table+" (") {
			t.Fatalf("init schema missing table %s", table)
		}
	}

	if !strings.Contains(initSQL, "CREATE UNIQUE INDEX idx_orders_order_number") {
		t.Fatal("orders.order_number must be unique")
	}
}
