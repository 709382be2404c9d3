package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"fintrack-server/src/config"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

// incorrectCredentials is returned for unknown user and bad password alike
// so the endpoint cannot be used to probe for usernames.
const incorrectCredentials = "incorrect username or password"

func Register(pool *pgxpool.Pool, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		if req.Username == "" || req.Password == "" || req.Email == "" {
			util.Fail(w, http.StatusBadRequest, "username, password and email are required")
			return
		}

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			util.Fail(w, http.StatusBadRequest, "invalid email format")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), cfg.BcryptCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", req.Username, err)
			util.Fail(w, http.StatusInternalServerError, "registration failed")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Username, req.Email, string(hashedPassword))
		if err != nil {
			if errors.Is(err, db.ErrUserExists) {
				log.Printf("ERROR: Registration failed - username or email already exists - Username: %s", req.Username)
				util.Fail(w, http.StatusConflict, "username or email already registered")
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Username, err)
			util.FailWithError(w, http.StatusInternalServerError, "registration failed", err)
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", user.Username, user.ID)

		util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "registration successful",
			"user":    user,
		})
	}
}

func Login(pool *pgxpool.Pool, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			util.Fail(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.Username == "" || req.Password == "" {
			util.Fail(w, http.StatusBadRequest, "username and password are required")
			return
		}

		user, err := db.GetUserByUsername(r.Context(), pool, req.Username)
		if err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				log.Printf("ERROR: Invalid login attempt for username %s from IP %s", req.Username, r.RemoteAddr)
				util.Fail(w, http.StatusUnauthorized, incorrectCredentials)
				return
			}
			log.Printf("ERROR: Failed to look up user during login - Username: %s: %v", req.Username, err)
			util.FailWithError(w, http.StatusInternalServerError, "login failed", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid login attempt for username %s from IP %s", req.Username, r.RemoteAddr)
			util.Fail(w, http.StatusUnauthorized, incorrectCredentials)
			return
		}

		ttl := time.Duration(cfg.JWTExpiresHours) * time.Hour
		tokenString, err := util.GenerateToken(cfg.JWTSecret, user.ID, user.Username, ttl)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Username, err)
			util.Fail(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Successful login - User: %s, ID: %d", user.Username, user.ID)

		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "login successful",
			"token":   tokenString,
			"user": models.PublicUser{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
		})
	}
}

// Profile re-fetches the user row so a token issued before a deletion does
// not resurrect the account.
func Profile(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				log.Printf("ERROR: Profile requested for missing user %d", userID)
				util.Fail(w, http.StatusNotFound, "user not found")
				return
			}
			log.Printf("ERROR: Failed to get profile for user %d: %v", userID, err)
			util.FailWithError(w, http.StatusInternalServerError, "failed to get profile", err)
			return
		}

		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    user,
		})
	}
}

// Logout is a stateless no-op: the only server-side session state is the
// token expiry, and the client drops its copy.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "logout successful",
		})
	}
}
