package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

// CreateGroup persists a new group with its members and expenses.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE code = ?", group.Code).Scan(&exists)
		if err == nil {
			return fmt.Errorf("%w: group %s", storage.ErrExists, group.Code)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check group existence: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO groups (code, creator, created_at) VALUES (?, ?, ?)",
			group.Code, group.Creator, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		return insertChildren(ctx, tx, group)
	})
}

// GetGroup retrieves a group by code, including members and expenses in order.
func (s *SQLiteStore) GetGroup(ctx context.Context, code string) (*models.Group, error) {
	return loadGroup(ctx, s.db, code)
}

// UpdateGroup rewrites a group inside one transaction.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, code string, fn func(*models.Group) error) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		group, err := loadGroup(ctx, tx, code)
		if err != nil {
			return err
		}
		if err := fn(group); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE groups SET creator = ?, created_at = ? WHERE code = ?",
			group.Creator, group.CreatedAt, code,
		)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		if err := deleteChildren(ctx, tx, code); err != nil {
			return err
		}
		group.Code = code
		return insertChildren(ctx, tx, group)
	})
}

// DeleteGroup removes a group and everything it owns.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, code string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteChildren(ctx, tx, code); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM groups WHERE code = ?", code)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: group %s", storage.ErrNotFound, code)
		}
		return nil
	})
}

func loadGroup(ctx context.Context, q querier, code string) (*models.Group, error) {
	group := &models.Group{}
	err := q.QueryRowContext(ctx,
		"SELECT code, creator, created_at FROM groups WHERE code = ?",
		code,
	).Scan(&group.Code, &group.Creator, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	// Get members
	rows, err := q.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE code = ? ORDER BY position",
		code,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		group.Members = append(group.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	rows.Close()

	// Get expenses
	expenseRows, err := q.QueryContext(ctx,
		`SELECT id, payer, amount, description, per_person, created_at
		 FROM expenses WHERE code = ? ORDER BY position`,
		code,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer expenseRows.Close()

	index := make(map[string]int)
	for expenseRows.Next() {
		var e models.Expense
		if err := expenseRows.Scan(&e.ID, &e.Payer, &e.Amount, &e.Description, &e.PerPerson, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan expense: %v", storage.ErrMalformed, err)
		}
		index[e.ID] = len(group.Expenses)
		group.Expenses = append(group.Expenses, e)
	}
	if err := expenseRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	expenseRows.Close()

	// Get split participants for all expenses at once
	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.user_id
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.code = ? ORDER BY e.position, s.position`,
		code,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, member string
		if err := splitRows.Scan(&expenseID, &member); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		i, ok := index[expenseID]
		if !ok {
			return nil, fmt.Errorf("%w: split for unknown expense %s", storage.ErrMalformed, expenseID)
		}
		group.Expenses[i].SplitWith = append(group.Expenses[i].SplitWith, member)
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return group, nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, group *models.Group) error {
	// Insert members
	for i, member := range group.Members {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (code, position, user_id) VALUES (?, ?, ?)",
			group.Code, i, member,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	// Insert expenses and their splits
	for i, e := range group.Expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, code, position, payer, amount, description, per_person, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, group.Code, i, e.Payer, e.Amount, e.Description, e.PerPerson, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, member := range e.SplitWith {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_splits (expense_id, position, user_id) VALUES (?, ?, ?)",
				e.ID, j, member,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense split: %w", err)
			}
		}
	}

	return nil
}

func deleteChildren(ctx context.Context, tx *sql.Tx, code string) error {
	_, err := tx.ExecContext(ctx,
		"DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE code = ?)",
		code,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE code = ?", code); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE code = ?", code); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}
	return nil
}
