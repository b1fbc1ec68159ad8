package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salesmart/internal/logging"
	"salesmart/pkg/version"
)

const metadataTable = "salesmart_metadata"

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salesmart_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// LoadInfo describes a completed warehouse load.
type LoadInfo struct {
	OrdersFile   string
	ProductsFile string
	FactRows     int64
}

// SaveLoadInfo records provenance for the most recent load.
func SaveLoadInfo(ctx context.Context, pool *pgxpool.Pool, info LoadInfo) error {
	_, err := pool.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"orders_file":   info.OrdersFile,
		"products_file": info.ProductsFile,
		"fact_rows":     strconv.FormatInt(info.FactRows, 10),
		"loaded_at":     time.Now().UTC().Format(time.RFC3339),
		"version":       version.Short(),
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO salesmart_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("orders_file", info.OrdersFile).
		Str("products_file", info.ProductsFile).
		Int64("fact_rows", info.FactRows).
		Msg("Saved load metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM salesmart_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM salesmart_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
