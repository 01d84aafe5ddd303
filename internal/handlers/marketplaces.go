package handlers

import (
	"fmt"
	"net/http"

	"marketkit/internal/marketplace"
)

// CreateMarketplace provisions a marketplace from an optional JSON body of
// marketplace.CreateParams.
func (a *API) CreateMarketplace(w http.ResponseWriter, r *http.Request) {
	var params marketplace.CreateParams
	if err := decodeJSON(w, r, &params, true); err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := a.marketplaces.Create(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GetMarketplace returns a marketplace view.
func (a *API) GetMarketplace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := a.marketplaces.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CategoryTree returns the localized category tree. The optional locale
// query parameter selects the preferred locale.
func (a *API) CategoryTree(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	locale := r.URL.Query().Get("locale")
	if err := a.validate.Var(locale, "omitempty,bcp47_language_tag"); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: invalid locale %q", errBadRequest, locale))
		return
	}

	tree, err := a.catalog.Tree(r.Context(), id, locale)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}
