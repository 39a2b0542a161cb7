// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// catalogQuery returns every group with its items, groups and items in
// display order. Groups without items appear once with NULL item
// columns.
const catalogQuery = `
	SELECT g.id, g.image_ref, i.title, i.subtitle, i.image_ref
	FROM carousel_groups g
	LEFT JOIN carousel_items i ON i.group_id = g.id
	ORDER BY g.position, g.id, i.position, i.id`

// schemaStatements creates the catalog tables if they do not exist.
const schemaStatements = `
	CREATE TABLE IF NOT EXISTS carousel_groups (
		id        SERIAL PRIMARY KEY,
		position  INTEGER NOT NULL,
		image_ref TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS carousel_items (
		id        SERIAL PRIMARY KEY,
		group_id  INTEGER NOT NULL REFERENCES carousel_groups(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL,
		title     TEXT NOT NULL DEFAULT '',
		subtitle  TEXT NOT NULL DEFAULT '',
		image_ref TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_carousel_items_group ON carousel_items(group_id, position);`

// PostgresSource reads the catalog from Postgres through a connection
// pool. Each Fetch runs one query.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to the database at connString (a
// postgres:// URL or key=value DSN) and verifies the connection.
func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Close releases the connection pool.
func (source *PostgresSource) Close() {
	if source.pool != nil {
		source.pool.Close()
	}
}

// Name returns "postgres".
func (source *PostgresSource) Name() string { return "postgres" }

// Fetch loads all groups and their items.
func (source *PostgresSource) Fetch(ctx context.Context) ([]ImageGroup, error) {
	rows, err := source.pool.Query(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var scanned []catalogRow
	for rows.Next() {
		var row catalogRow
		if err := rows.Scan(&row.groupID, &row.groupImage, &row.title, &row.subtitle, &row.itemImage); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}

	return groupRows(scanned), nil
}

// catalogRow is one row of catalogQuery. Item columns are nil for a
// group with no items.
type catalogRow struct {
	groupID    int64
	groupImage string
	title      *string
	subtitle   *string
	itemImage  *string
}

// groupRows folds ordered join rows back into groups. Rows for one
// group are contiguous because the query orders by group first.
func groupRows(rows []catalogRow) []ImageGroup {
	var groups []ImageGroup
	currentID := int64(-1)
	for _, row := range rows {
		if len(groups) == 0 || row.groupID != currentID {
			groups = append(groups, ImageGroup{ImageRef: ImageRef(row.groupImage)})
			currentID = row.groupID
		}
		if row.title == nil {
			continue
		}
		group := &groups[len(groups)-1]
		group.Items = append(group.Items, Item{
			Title:    *row.title,
			Subtitle: stringOrEmpty(row.subtitle),
			ImageRef: ImageRef(stringOrEmpty(row.itemImage)),
		})
	}
	return groups
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// InitSchema creates the catalog tables on the database at connString.
func InitSchema(ctx context.Context, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect to catalog database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schemaStatements); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}
	return nil
}

// Import replaces the catalog stored in the database with groups,
// inside one transaction.
func (source *PostgresSource) Import(ctx context.Context, groups []ImageGroup) error {
	return pgx.BeginFunc(ctx, source.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM carousel_groups"); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		for groupPosition, group := range groups {
			var groupID int64
			err := tx.QueryRow(ctx,
				"INSERT INTO carousel_groups (position, image_ref) VALUES ($1, $2) RETURNING id",
				groupPosition, string(group.ImageRef)).Scan(&groupID)
			if err != nil {
				return fmt.Errorf("insert group %d: %w", groupPosition, err)
			}
			for itemPosition, item := range group.Items {
				_, err := tx.Exec(ctx,
					`INSERT INTO carousel_items (group_id, position, title, subtitle, image_ref)
					VALUES ($1, $2, $3, $4, $5)`,
					groupID, itemPosition, item.Title, item.Subtitle, string(item.ImageRef))
				if err != nil {
					return fmt.Errorf("insert item %d of group %d: %w", itemPosition, groupPosition, err)
				}
			}
		}
		return nil
	})
}
