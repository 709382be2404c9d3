package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

func validateTransactionInput(in *models.TransactionInput) string {
	if in.Type == "" || in.Category == "" || in.Amount == nil {
		return "type, category and amount are required"
	}
	if !util.ValidateTransactionType(in.Type) {
		return "type must be income or expense"
	}
	if *in.Amount < 0 {
		return "amount must not be negative"
	}
	return ""
}

func GetAllTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		transactions, err := db.GetAllTransactionsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to get transactions", err)
			return
		}

		util.WriteJSON(w, http.StatusOK, transactions)
	}
}

func GetTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		idStr := chi.URLParam(r, "id")
		transactionID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", idStr)
			util.Fail(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				util.Fail(w, http.StatusNotFound, "transaction not found")
				return
			}
			log.Printf("ERROR: Failed to get transaction %d for user %d: %v", transactionID, userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to get transaction", err)
			return
		}

		util.WriteJSON(w, http.StatusOK, transaction)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var in models.TransactionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		if msg := validateTransactionInput(&in); msg != "" {
			util.Fail(w, http.StatusBadRequest, msg)
			return
		}

		created, err := db.CreateTransaction(r.Context(), pool, userID, &in)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to create transaction", err)
			return
		}

		log.Printf("INFO: Created transaction id %d for user %d, category %s", created.ID, userID, created.Category)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		idStr := chi.URLParam(r, "id")
		transactionID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", idStr)
			util.Fail(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		var in models.TransactionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		if msg := validateTransactionInput(&in); msg != "" {
			util.Fail(w, http.StatusBadRequest, msg)
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, userID, transactionID, &in)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				util.Fail(w, http.StatusNotFound, "transaction not found")
				return
			}
			log.Printf("ERROR: Failed to update transaction %d for user %d: %v", transactionID, userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to update transaction", err)
			return
		}

		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		idStr := chi.URLParam(r, "id")
		transactionID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", idStr)
			util.Fail(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		err = db.DeleteTransaction(r.Context(), pool, userID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				util.Fail(w, http.StatusNotFound, "transaction not found")
				return
			}
			log.Printf("ERROR: Failed to delete transaction %d for user %d: %v", transactionID, userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to delete transaction", err)
			return
		}

		log.Printf("INFO: Deleted transaction id %d for user %d", transactionID, userID)
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "transaction deleted",
		})
	}
}
