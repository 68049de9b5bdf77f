package handler

import (
	"net/http"

	"github.com/Lombiq/NGM.Forum/shared/api"
	"github.com/Lombiq/NGM.Forum/shared/utils"
)

// GetItem serves any content item by id, whatever its type.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	version, err := parseVersionParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	found, err := h.thread.Get(r.Context(), id, version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	item, ok := found.Get()
	if !ok {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, api.NewContentItemResponse(item))
}
