package handlers

import (
	"net/http"

	"marketkit/internal/listingshape"
	"marketkit/internal/models"
)

// ListShapes returns the marketplace's listing shapes.
func (a *API) ListShapes(w http.ResponseWriter, r *http.Request) {
	marketplaceID, ok := a.marketplaceID(w, r)
	if !ok {
		return
	}

	shapes, err := a.shapes.GetAll(r.Context(), marketplaceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if shapes == nil {
		shapes = []models.ListingShape{}
	}
	writeJSON(w, http.StatusOK, shapes)
}

// CreateShape creates a listing shape from a listingshape.NewShape body.
func (a *API) CreateShape(w http.ResponseWriter, r *http.Request) {
	marketplaceID, ok := a.marketplaceID(w, r)
	if !ok {
		return
	}

	var in listingshape.NewShape
	if err := decodeJSON(w, r, &in, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	shape, err := a.shapes.Create(r.Context(), marketplaceID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shape)
}

// GetShape returns one listing shape.
func (a *API) GetShape(w http.ResponseWriter, r *http.Request) {
	marketplaceID, ok := a.marketplaceID(w, r)
	if !ok {
		return
	}
	shapeID, err := pathID(r, "shapeID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	shape, err := a.shapes.Get(r.Context(), marketplaceID, shapeID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if shape == nil {
		writeError(w, "listing shape not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, shape)
}

// UpdateShape applies a listingshape.UpdateShape body to a listing shape.
func (a *API) UpdateShape(w http.ResponseWriter, r *http.Request) {
	marketplaceID, ok := a.marketplaceID(w, r)
	if !ok {
		return
	}
	shapeID, err := pathID(r, "shapeID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var in listingshape.UpdateShape
	if err := decodeJSON(w, r, &in, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	shape, err := a.shapes.Update(r.Context(), marketplaceID, shapeID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if shape == nil {
		writeError(w, "listing shape not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, shape)
}

// ShapeDirections maps each listing shape id to "offer" or "request".
func (a *API) ShapeDirections(w http.ResponseWriter, r *http.Request) {
	marketplaceID, ok := a.marketplaceID(w, r)
	if !ok {
		return
	}

	directions, err := a.shapes.Directions(r.Context(), marketplaceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, directions)
}
