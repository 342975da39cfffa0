package http

import (
	"net/http"

	"brinquedos-backend/internal/domain"
)

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var it domain.InventoryItem
	if err := decodeJSON(r, &it); err != nil {
		writeError(w, r, err)
		return
	}
	it.ID = 0
	it.OrgID = org
	if err := h.itemSvc.CreateItem(r.Context(), &it); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	it, err := h.itemSvc.GetItem(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	it, err := h.itemSvc.GetItem(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := decodeJSON(r, it); err != nil {
		writeError(w, r, err)
		return
	}
	it.ID, it.OrgID = id, org
	if err := h.itemSvc.UpdateItem(r.Context(), it); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.itemSvc.DeleteItem(r.Context(), org, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.itemSvc.ListItems(r.Context(), org)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListAvailableItems answers GET /items/available?from=yyyy-mm-dd&to=yyyy-mm-dd.
func (h *Handler) ListAvailableItems(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, err := requiredDate(r, "from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := requiredDate(r, "to")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.itemSvc.ListAvailableItems(r.Context(), org, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) ItemROI(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	roi, err := h.reportSvc.ItemROI(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roi)
}
