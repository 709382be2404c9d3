package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "fintrack-server/src/db"
	"fintrack-server/src/models"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("a budget for this category already exists")
)

// CreateBudget inserts and lets the (user_id, category) unique index decide
// conflicts, so two concurrent creates cannot both succeed.
func CreateBudget(ctx context.Context, pool *pgxpool.Pool, userID int64, category string, amount float64) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category, amount)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, category, amount
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, userID, category, amount).
		Scan(&b.ID, &b.UserID, &b.Category, &b.Amount)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrBudgetExists
		}
		return nil, err
	}

	cache.InvalidateBudgetCache(userID)
	return &b, nil
}

func GetBudgetByCategory(ctx context.Context, pool *pgxpool.Pool, userID int64, category string) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category, amount
		FROM budgets WHERE user_id = $1 AND category = $2
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, userID, category).
		Scan(&b.ID, &b.UserID, &b.Category, &b.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}

func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Budget, error) {
	if cached, ok := cache.GetCachedBudgetList(userID); ok {
		if budgets, ok := cached.([]models.Budget); ok {
			return budgets, nil
		}
	}

	query := `
		SELECT id, user_id, category, amount
		FROM budgets WHERE user_id = $1
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cache.SetBudgetListCache(userID, budgets)
	return budgets, nil
}

// UpdateBudgetByCategory replaces the amount only.
func UpdateBudgetByCategory(ctx context.Context, pool *pgxpool.Pool, userID int64, category string, amount float64) (*models.Budget, error) {
	query := `
		UPDATE budgets SET amount = $1
		WHERE user_id = $2 AND category = $3
		RETURNING id, user_id, category, amount
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, amount, userID, category).
		Scan(&b.ID, &b.UserID, &b.Category, &b.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	cache.InvalidateBudgetCache(userID)
	return &b, nil
}

func DeleteBudgetByCategory(ctx context.Context, pool *pgxpool.Pool, userID int64, category string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND category = $2`, userID, category)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}

	cache.InvalidateBudgetCache(userID)
	return nil
}
