package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

func GetSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		settings, err := db.GetSettings(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get settings for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to get settings", err)
			return
		}

		util.WriteJSON(w, http.StatusOK, settings)
	}
}

func UpdateSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var in models.SettingsInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Printf("ERROR: Failed to decode update settings request body for user %d: %v", userID, err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		if in.Theme != nil && !util.ValidateTheme(*in.Theme) {
			util.Fail(w, http.StatusBadRequest, "theme must be light or dark")
			return
		}

		settings, err := db.UpsertSettings(r.Context(), pool, userID, &in)
		if err != nil {
			log.Printf("ERROR: Failed to update settings for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to update settings", err)
			return
		}

		log.Printf("INFO: Settings updated for user %d", userID)
		util.WriteJSON(w, http.StatusOK, settings)
	}
}
