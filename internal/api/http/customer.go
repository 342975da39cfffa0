package http

import (
	"net/http"

	"brinquedos-backend/internal/domain"
)

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var c domain.Customer
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	c.ID = 0
	c.OrgID = org
	if err := h.customerSvc.CreateCustomer(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.customerSvc.GetCustomer(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.customerSvc.GetCustomer(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := decodeJSON(r, c); err != nil {
		writeError(w, r, err)
		return
	}
	c.ID, c.OrgID = id, org
	if err := h.customerSvc.UpdateCustomer(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
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
	if err := h.customerSvc.DeleteCustomer(r.Context(), org, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	customers, err := h.customerSvc.ListCustomers(r.Context(), org, domain.CustomerStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}
