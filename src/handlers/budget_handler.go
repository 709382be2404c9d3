package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

// categoryParam decodes the category path segment; categories are free text
// and usually arrive percent-encoded.
func categoryParam(r *http.Request) string {
	raw := chi.URLParam(r, "category")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func GetAllBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to get budgets", err)
			return
		}

		util.WriteJSON(w, http.StatusOK, budgets)
	}
}

func GetBudgetByCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		category := categoryParam(r)

		budget, err := db.GetBudgetByCategory(r.Context(), pool, userID, category)
		if err != nil {
			if errors.Is(err, db.ErrBudgetNotFound) {
				util.Fail(w, http.StatusNotFound, "no budget for this category")
				return
			}
			log.Printf("ERROR: Failed to get budget for user %d, category %s: %v", userID, category, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to get budget", err)
			return
		}

		util.WriteJSON(w, http.StatusOK, budget)
	}
}

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var in models.BudgetInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		if in.Category == "" || in.Amount == nil {
			util.Fail(w, http.StatusBadRequest, "category and amount are required")
			return
		}

		created, err := db.CreateBudget(r.Context(), pool, userID, in.Category, *in.Amount)
		if err != nil {
			if errors.Is(err, db.ErrBudgetExists) {
				log.Printf("ERROR: Duplicate budget for user %d, category %s", userID, in.Category)
				util.Fail(w, http.StatusConflict, "a budget for this category already exists")
				return
			}
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to create budget", err)
			return
		}

		log.Printf("INFO: Created budget id %d for user %d, category %s", created.ID, userID, created.Category)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func UpdateBudgetByCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		category := categoryParam(r)

		var in models.BudgetInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %d: %v", userID, err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		if in.Amount == nil {
			util.Fail(w, http.StatusBadRequest, "amount is required")
			return
		}

		updated, err := db.UpdateBudgetByCategory(r.Context(), pool, userID, category, *in.Amount)
		if err != nil {
			if errors.Is(err, db.ErrBudgetNotFound) {
				util.Fail(w, http.StatusNotFound, "no budget for this category")
				return
			}
			log.Printf("ERROR: Failed to update budget for user %d, category %s: %v", userID, category, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to update budget", err)
			return
		}

		log.Printf("INFO: Updated budget id %d for user %d", updated.ID, userID)
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteBudgetByCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		category := categoryParam(r)

		err := db.DeleteBudgetByCategory(r.Context(), pool, userID, category)
		if err != nil {
			if errors.Is(err, db.ErrBudgetNotFound) {
				util.Fail(w, http.StatusNotFound, "no budget for this category")
				return
			}
			log.Printf("ERROR: Failed to delete budget for user %d, category %s: %v", userID, category, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to delete budget", err)
			return
		}

		log.Printf("INFO: Deleted budget for user %d, category %s", userID, category)
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "budget deleted",
		})
	}
}
