package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/mlegrand/equilog-backend/api/responses"
	"github.com/mlegrand/equilog-backend/api/validators"
	"github.com/mlegrand/equilog-backend/internal/horses"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
	"github.com/mlegrand/equilog-backend/pkg/pagination"
)

// HorseCreate registers a horse under the authenticated owner.
func HorseCreate(svc horses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body horses.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horse, err := svc.Create(r.Context(), owner, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, horse)
	}
}

// HorseList returns a cursor page of the owner's horses, newest first.
func HorseList(svc horses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), owner, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// HorseDetail returns one horse with its signed photo URL and current
// detention address.
func HorseDetail(svc horses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horseID, err := pathUUID(r, "horseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), owner, horseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// HorseUpdate applies a partial update to an owned horse.
func HorseUpdate(svc horses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horseID, err := pathUUID(r, "horseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body horses.UpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horse, err := svc.Update(r.Context(), owner, horseID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, horse)
	}
}

// HorseDelete removes an owned horse. Hard delete, no tombstone.
func HorseDelete(svc horses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horseID, err := pathUUID(r, "horseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), owner, horseID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// HorsePhotoUpload accepts a multipart "photo" part, stores it, and returns
// the new object path with a signed read URL.
func HorsePhotoUpload(svc horses.Service, maxUploadMB int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		horseID, err := pathUUID(r, "horseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBytes := int64(maxUploadMB) * 1024 * 1024
		if maxBytes <= 0 {
			maxBytes = 5 * 1024 * 1024
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+512*1024)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "photo field is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read photo"))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		result, err := svc.UploadPhoto(r.Context(), owner, horseID, horses.PhotoUpload{
			Filename:    header.Filename,
			ContentType: contentType,
			Data:        data,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
