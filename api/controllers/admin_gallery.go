package controllers

import (
	"net/http"

	"github.com/chocokroko/chocokroko-backend/api/responses"
	"github.com/chocokroko/chocokroko-backend/api/validators"
	"github.com/chocokroko/chocokroko-backend/internal/gallery"
	pkgerrors "github.com/chocokroko/chocokroko-backend/pkg/errors"
	"github.com/chocokroko/chocokroko-backend/pkg/logger"
)

type galleryItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	ImageURL    string  `json:"image_url" validate:"required,url"`
	IsActive    *bool   `json:"is_active"`
}

func (r galleryItemRequest) toInput() gallery.ItemInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return gallery.ItemInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		IsActive:    active,
	}
}

// AdminListGallery returns every gallery item, inactive ones included.
func AdminListGallery(svc gallery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}
		items, err := svc.List(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// AdminCreateGalleryItem adds a gallery item.
func AdminCreateGalleryItem(svc gallery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}
		var payload galleryItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminUpdateGalleryItem replaces a gallery item's fields.
func AdminUpdateGalleryItem(svc gallery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}
		id, err := parseIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload galleryItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminDeleteGalleryItem removes a gallery item.
func AdminDeleteGalleryItem(svc gallery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}
		id, err := parseIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
