package controllers

import (
	"net/http"

	"github.com/mlegrand/equilog-backend/api/responses"
	"github.com/mlegrand/equilog-backend/api/validators"
	"github.com/mlegrand/equilog-backend/internal/interventions"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// InterventionCreate records a care event for an owned horse.
func InterventionCreate(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body interventions.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), userID, horseID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// InterventionList returns the horse's care history, newest first.
func InterventionList(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
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
