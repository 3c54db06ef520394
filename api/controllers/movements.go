package controllers

import (
	"net/http"

	"github.com/mlegrand/equilog-backend/api/responses"
	"github.com/mlegrand/equilog-backend/api/validators"
	"github.com/mlegrand/equilog-backend/internal/movements"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// MovementCreate records a movement for an owned horse.
func MovementCreate(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horseID, err := pathUUID(r, "horseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body movements.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Create(r.Context(), userID, horseID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// MovementList returns the horse's enriched movement history.
func MovementList(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horseID, err := pathUUID(r, "horseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByHorse(r.Context(), userID, horseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
