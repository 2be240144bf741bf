package controllers

import (
	"net/http"

	"github.com/nishantpawar/institute-backend/api/responses"
	"github.com/nishantpawar/institute-backend/api/validators"
	"github.com/nishantpawar/institute-backend/internal/media"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

// SignedUploadURL issues a short-lived PUT URL for a direct-to-bucket
// upload.
func SignedUploadURL(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		var payload media.UploadInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.SignedUpload(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}
