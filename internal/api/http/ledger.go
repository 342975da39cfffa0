package http

import (
	"net/http"

	"brinquedos-backend/internal/domain"
)

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var e domain.LedgerEntry
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = 0
	e.OrgID = org
	if err := h.ledgerSvc.CreateEntry(r.Context(), &e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
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
	e, err := h.ledgerSvc.GetEntry(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
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
	e, err := h.ledgerSvc.GetEntry(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := decodeJSON(r, e); err != nil {
		writeError(w, r, err)
		return
	}
	e.ID, e.OrgID = id, org
	if err := h.ledgerSvc.UpdateEntry(r.Context(), e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
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
	if err := h.ledgerSvc.DeleteEntry(r.Context(), org, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter, err := ledgerFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.ledgerSvc.ListEntries(r.Context(), org, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func ledgerFilter(r *http.Request) (domain.LedgerFilter, error) {
	q := r.URL.Query()
	f := domain.LedgerFilter{
		Origin:       domain.EntryOrigin(q.Get("origin")),
		Direction:    domain.Direction(q.Get("direction")),
		PaymentState: domain.EntryPaymentState(q.Get("payment_state")),
	}
	var err error
	if f.From, err = queryDate(r, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryDate(r, "to"); err != nil {
		return f, err
	}
	if f.BookingID, err = queryID(r, "booking_id"); err != nil {
		return f, err
	}
	if f.ItemID, err = queryID(r, "item_id"); err != nil {
		return f, err
	}
	return f, nil
}
