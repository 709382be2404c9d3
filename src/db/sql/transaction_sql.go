package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "fintrack-server/src/db"
	"fintrack-server/src/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

const transactionColumns = "id, user_id, type, category, amount, date, note, created_at"

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Note, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetAllTransactionsForUser lists the user's transactions newest first, ties
// broken by insertion order. The result is cached per user until a mutation
// invalidates it.
func GetAllTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Transaction, error) {
	if cached, ok := cache.GetCachedTransactionList(userID); ok {
		if transactions, ok := cached.([]models.Transaction); ok {
			return transactions, nil
		}
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE user_id = $1
		ORDER BY date DESC, id ASC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cache.SetTransactionListCache(userID, transactions)
	return transactions, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE id = $1 AND user_id = $2
	`
	t, err := scanTransaction(pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, in *models.TransactionInput) (*models.Transaction, error) {
	date := models.Today()
	if in.Date != nil {
		date = *in.Date
	}

	query := `
		INSERT INTO transactions (user_id, type, category, amount, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns
	t, err := scanTransaction(pool.QueryRow(ctx, query, userID, in.Type, in.Category, *in.Amount, date, in.Note))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	cache.InvalidateTransactionCache(userID)
	return t, nil
}

// UpdateTransaction overwrites type, category and amount; a nil Date or Note
// keeps the stored value rather than nulling it.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, in *models.TransactionInput) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET type = $1, category = $2, amount = $3,
		    date = COALESCE($4, date), note = COALESCE($5, note)
		WHERE id = $6 AND user_id = $7
		RETURNING ` + transactionColumns
	t, err := scanTransaction(pool.QueryRow(ctx, query, in.Type, in.Category, *in.Amount, in.Date, in.Note, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	cache.InvalidateTransactionCache(userID)
	return t, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	cache.InvalidateTransactionCache(userID)
	return nil
}
