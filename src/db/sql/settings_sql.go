package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

// GetSettings returns the user's settings row, creating it with defaults if
// missing. The synthesized response carries a null id, matching the lazy
// creation path of the original API.
func GetSettings(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.Settings, error) {
	var s models.Settings
	query := `SELECT id, user_id, currency, theme FROM settings WHERE user_id = $1`
	err := pool.QueryRow(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Currency, &s.Theme)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row yet: persist defaults. ON CONFLICT makes the lazy create safe
	// against a concurrent registration or PUT.
	_, err = pool.Exec(ctx, `
		INSERT INTO settings (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, err
	}

	return &models.Settings{
		ID:       nil,
		UserID:   userID,
		Currency: models.DefaultCurrency,
		Theme:    models.DefaultTheme,
	}, nil
}

// UpsertSettings applies a partial update atomically: nil fields keep their
// stored value, and a missing row is created from defaults merged with the
// provided fields.
func UpsertSettings(ctx context.Context, pool *pgxpool.Pool, userID int64, in *models.SettingsInput) (*models.Settings, error) {
	query := `
		INSERT INTO settings (user_id, currency, theme)
		VALUES ($1, COALESCE($2, '¥'), COALESCE($3, 'light'))
		ON CONFLICT (user_id) DO UPDATE
		SET currency = COALESCE($2, settings.currency),
		    theme = COALESCE($3, settings.theme)
		RETURNING id, user_id, currency, theme
	`
	var s models.Settings
	err := pool.QueryRow(ctx, query, userID, in.Currency, in.Theme).
		Scan(&s.ID, &s.UserID, &s.Currency, &s.Theme)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
