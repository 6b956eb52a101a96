package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/godutch/internal/models"
)

// LoadRegistry reads identities and registry group entries.
func (s *SQLiteStore) LoadRegistry(ctx context.Context) (*models.Registry, error) {
	return loadRegistry(ctx, s.db)
}

// UpdateRegistry rewrites the registry tables inside one transaction.
func (s *SQLiteStore) UpdateRegistry(ctx context.Context, fn func(*models.Registry) error) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		reg, err := loadRegistry(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(reg); err != nil {
			return err
		}
		return writeRegistry(ctx, tx, reg)
	})
}

func loadRegistry(ctx context.Context, q querier) (*models.Registry, error) {
	reg := models.NewRegistry()

	rows, err := q.QueryContext(ctx,
		"SELECT credential_id, user_id, device_id, created_at FROM identities",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var credentialID string
		var id models.Identity
		if err := rows.Scan(&credentialID, &id.ID, &id.DeviceID, &id.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		reg.Users[credentialID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate identities: %w", err)
	}
	rows.Close()

	groupRows, err := q.QueryContext(ctx,
		"SELECT code, creator, created_at FROM registry_groups",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry groups: %w", err)
	}
	defer groupRows.Close()

	for groupRows.Next() {
		var code string
		var entry models.GroupEntry
		if err := groupRows.Scan(&code, &entry.Creator, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registry group: %w", err)
		}
		reg.Groups[code] = entry
	}
	if err := groupRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registry groups: %w", err)
	}

	return reg, nil
}

func writeRegistry(ctx context.Context, tx *sql.Tx, reg *models.Registry) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM identities"); err != nil {
		return fmt.Errorf("failed to clear identities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM registry_groups"); err != nil {
		return fmt.Errorf("failed to clear registry groups: %w", err)
	}

	for credentialID, id := range reg.Users {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO identities (credential_id, user_id, device_id, created_at) VALUES (?, ?, ?, ?)",
			credentialID, id.ID, id.DeviceID, id.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert identity: %w", err)
		}
	}

	for code, entry := range reg.Groups {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO registry_groups (code, creator, created_at) VALUES (?, ?, ?)",
			code, entry.Creator, entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert registry group: %w", err)
		}
	}

	return nil
}
