package controllers

import (
	"net/http"
	"strings"

	"github.com/mlegrand/equilog-backend/api/middleware"
	"github.com/mlegrand/equilog-backend/api/responses"
	"github.com/mlegrand/equilog-backend/api/validators"
	"github.com/mlegrand/equilog-backend/internal/professionals"
	"github.com/mlegrand/equilog-backend/pkg/enums"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

const maxDirectoryQueryLen = 120

// ProfessionalCreate adds a directory entry, deduplicating against existing
// records. A dedup hit returns 200 with the surviving record instead of 201.
func ProfessionalCreate(svc professionals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body professionals.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if result.Deduplicated {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

// ProfessionalList returns the directory, optionally narrowed by kind and a
// free-text query.
func ProfessionalList(svc professionals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := professionals.ListFilter{
			Query: validators.SanitizeString(r.URL.Query().Get("q"), maxDirectoryQueryLen),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
			kind, err := enums.ParseProfessionKind(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid kind"))
				return
			}
			filter.Kind = &kind
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProfessionalDetail returns one directory entry with its address.
func ProfessionalDetail(svc professionals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "professionalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProfessionalUpdate applies a partial update. Only the creator or an admin
// may modify a record; the service enforces that rule.
func ProfessionalUpdate(svc professionals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "professionalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body professionals.UpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isAdmin := middleware.RoleFromContext(r.Context()) == string(enums.UserRoleAdmin)
		result, err := svc.Update(r.Context(), userID, isAdmin, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProfessionalVerify marks a directory entry as verified. Admin only; the
// router guards the route with RequireRole.
func ProfessionalVerify(svc professionals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "professionalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Verify(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
