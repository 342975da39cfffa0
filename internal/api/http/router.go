package http

import (
	"net/http"

	"brinquedos-backend/internal/security"
	"brinquedos-backend/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	authSvc     service.AuthService
	customerSvc service.CustomerService
	itemSvc     service.ItemService
	bookingSvc  service.BookingService
	ledgerSvc   service.LedgerService
	reportSvc   service.ReportService
}

func NewHandler(
	authSvc service.AuthService,
	customerSvc service.CustomerService,
	itemSvc service.ItemService,
	bookingSvc service.BookingService,
	ledgerSvc service.LedgerService,
	reportSvc service.ReportService,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		customerSvc: customerSvc,
		itemSvc:     itemSvc,
		bookingSvc:  bookingSvc,
		ledgerSvc:   ledgerSvc,
		reportSvc:   reportSvc,
	}
}

// NewRouter registers every route. Route names key the security levels in
// config.EndpointSecurityConfig.
func NewRouter(h *Handler, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger, NewAuthMiddleware(tm).Handler)

	router.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet).Name("healthz")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost).Name("auth.refresh")

	api.HandleFunc("/customers", h.ListCustomers).Methods(http.MethodGet).Name("customers.list")
	api.HandleFunc("/customers", h.CreateCustomer).Methods(http.MethodPost).Name("customers.create")
	api.HandleFunc("/customers/{id:[0-9]+}", h.GetCustomer).Methods(http.MethodGet).Name("customers.get")
	api.HandleFunc("/customers/{id:[0-9]+}", h.UpdateCustomer).Methods(http.MethodPut).Name("customers.update")
	api.HandleFunc("/customers/{id:[0-9]+}", h.DeleteCustomer).Methods(http.MethodDelete).Name("customers.delete")

	api.HandleFunc("/items", h.ListItems).Methods(http.MethodGet).Name("items.list")
	api.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost).Name("items.create")
	api.HandleFunc("/items/available", h.ListAvailableItems).Methods(http.MethodGet).Name("items.available")
	api.HandleFunc("/items/{id:[0-9]+}", h.GetItem).Methods(http.MethodGet).Name("items.get")
	api.HandleFunc("/items/{id:[0-9]+}", h.UpdateItem).Methods(http.MethodPut).Name("items.update")
	api.HandleFunc("/items/{id:[0-9]+}", h.DeleteItem).Methods(http.MethodDelete).Name("items.delete")
	api.HandleFunc("/items/{id:[0-9]+}/roi", h.ItemROI).Methods(http.MethodGet).Name("items.roi")

	api.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet).Name("bookings.list")
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings/{id:[0-9]+}", h.GetBooking).Methods(http.MethodGet).Name("bookings.get")
	api.HandleFunc("/bookings/{id:[0-9]+}", h.UpdateBooking).Methods(http.MethodPut).Name("bookings.update")
	api.HandleFunc("/bookings/{id:[0-9]+}", h.DeleteBooking).Methods(http.MethodDelete).Name("bookings.delete")
	api.HandleFunc("/bookings/{id:[0-9]+}/status", h.ChangeBookingStatus).Methods(http.MethodPatch).Name("bookings.status")
	api.HandleFunc("/bookings/{id:[0-9]+}/payment", h.ChangeBookingPayment).Methods(http.MethodPatch).Name("bookings.payment")

	api.HandleFunc("/ledger", h.ListEntries).Methods(http.MethodGet).Name("ledger.list")
	api.HandleFunc("/ledger", h.CreateEntry).Methods(http.MethodPost).Name("ledger.create")
	api.HandleFunc("/ledger/{id:[0-9]+}", h.GetEntry).Methods(http.MethodGet).Name("ledger.get")
	api.HandleFunc("/ledger/{id:[0-9]+}", h.UpdateEntry).Methods(http.MethodPut).Name("ledger.update")
	api.HandleFunc("/ledger/{id:[0-9]+}", h.DeleteEntry).Methods(http.MethodDelete).Name("ledger.delete")

	api.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet).Name("dashboard")

	return router
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
