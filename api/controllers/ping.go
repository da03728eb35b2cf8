package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/medicore-health/medicore-backend/api/middleware"
	"github.com/medicore-health/medicore-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if accountID := middleware.AccountIDFromContext(r.Context()); accountID != uuid.Nil {
			payload["account_id"] = accountID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
