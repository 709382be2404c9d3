package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		next.ServeHTTP(w, r)

		log.Printf("INFO: [%s] %s %s from %s completed in %s",
			requestID, r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}
