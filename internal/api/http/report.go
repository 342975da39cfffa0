package http

import "net/http"

// Dashboard answers GET /dashboard?from=yyyy-mm-dd&to=yyyy-mm-dd.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
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
	d, err := h.reportSvc.Dashboard(r.Context(), org, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
