package http

import (
	"net/http"

	"brinquedos-backend/internal/domain"
)

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var b domain.Booking
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, r, err)
		return
	}
	b.ID = 0
	b.OrgID = org
	if err := h.bookingSvc.CreateBooking(r.Context(), &b); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
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
	b, err := h.bookingSvc.GetBooking(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateBooking decodes the body over the stored booking, so omitted fields
// keep their values.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
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
	b, err := h.bookingSvc.GetBooking(r.Context(), org, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := decodeJSON(r, b); err != nil {
		writeError(w, r, err)
		return
	}
	b.ID, b.OrgID = id, org
	if err := h.bookingSvc.UpdateBooking(r.Context(), b); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
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
	if err := h.bookingSvc.DeleteBooking(r.Context(), org, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBookings filters by ?date=yyyy-mm-dd (party date) or ?status=.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	org, err := orgID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var bookings []domain.Booking
	if day != nil {
		bookings, err = h.bookingSvc.ListBookingsByDate(r.Context(), org, *day)
	} else {
		bookings, err = h.bookingSvc.ListBookings(r.Context(), org, domain.BookingStatus(r.URL.Query().Get("status")))
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

type statusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

func (h *Handler) ChangeBookingStatus(w http.ResponseWriter, r *http.Request) {
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
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.bookingSvc.ChangeStatus(r.Context(), org, id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type paymentRequest struct {
	PaymentState domain.BookingPaymentState `json:"payment_state"`
}

func (h *Handler) ChangeBookingPayment(w http.ResponseWriter, r *http.Request) {
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
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.bookingSvc.ChangePaymentState(r.Context(), org, id, req.PaymentState)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
