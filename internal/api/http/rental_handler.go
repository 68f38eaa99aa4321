package http

import (
	"encoding/json"
	"net/http"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"

	"github.com/gorilla/mux"
)

// RentalHandler is the thin HTTP layer over the rental service: request
// decoding, shape validation, and status mapping. Business rules live in
// the service.
type RentalHandler struct {
	svc service.RentalService
}

func NewRentalHandler(svc service.RentalService) *RentalHandler {
	return &RentalHandler{svc: svc}
}

// NewRouter builds the rental API routes.
func NewRouter(h *RentalHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/rentals", h.GetAllRentals).Methods(http.MethodGet)
	r.HandleFunc("/rentals/pickup", h.RegisterPickup).Methods(http.MethodPost)
	r.HandleFunc("/rentals/return", h.RegisterReturn).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{bookingNumber}", h.GetRental).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{bookingNumber}", h.UpdateRental).Methods(http.MethodPut)
	r.HandleFunc("/rentals/{bookingNumber}", h.DeleteRental).Methods(http.MethodDelete)
	return r
}

type pickupRequest struct {
	RegistrationNumber string     `json:"registration_number"`
	CustomerID         string     `json:"customer_id"`
	CarCategory        string     `json:"car_category"`
	PickupDate         *time.Time `json:"pickup_date"`
	PickupMeterReading *int64     `json:"pickup_meter_reading"`
}

func (req *pickupRequest) validate() []string {
	var msgs []string
	if req.RegistrationNumber == "" {
		msgs = append(msgs, "Registration number is required")
	}
	if req.CustomerID == "" {
		msgs = append(msgs, "Customer id is required")
	}
	if _, err := domain.ParseCarCategory(req.CarCategory); err != nil {
		msgs = append(msgs, "Car category must be one of Small, Medium, Large, Suv, Minivan")
	}
	if req.PickupDate == nil {
		msgs = append(msgs, "Pickup date is required")
	}
	if req.PickupMeterReading == nil {
		msgs = append(msgs, "Pickup meter reading is required")
	} else if *req.PickupMeterReading < 0 {
		msgs = append(msgs, "Pickup meter reading must be greater than or equal to 0")
	}
	return msgs
}

type returnRequest struct {
	BookingNumber      string     `json:"booking_number"`
	ReturnDate         *time.Time `json:"return_date"`
	ReturnMeterReading *int64     `json:"return_meter_reading"`
}

func (req *returnRequest) validate() []string {
	var msgs []string
	if req.BookingNumber == "" {
		msgs = append(msgs, "Booking number is required")
	}
	if req.ReturnDate == nil {
		msgs = append(msgs, "Return date is required")
	}
	if req.ReturnMeterReading == nil {
		msgs = append(msgs, "Return meter reading is required")
	} else if *req.ReturnMeterReading < 0 {
		msgs = append(msgs, "Return meter reading must be greater than or equal to 0")
	}
	return msgs
}

func (h *RentalHandler) GetAllRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	bookingNumber := mux.Vars(r)["bookingNumber"]
	rental, err := h.svc.GetByBookingNumber(r.Context(), bookingNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) RegisterPickup(w http.ResponseWriter, r *http.Request) {
	var req pickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeError(w, domain.NewValidationError("Validation failed", msgs...))
		return
	}

	draft := &domain.Rental{
		RegistrationNumber: req.RegistrationNumber,
		CustomerID:         req.CustomerID,
		CarCategory:        domain.CarCategory(req.CarCategory),
		PickupDate:         *req.PickupDate,
		PickupMeterReading: *req.PickupMeterReading,
	}

	created, err := h.svc.RegisterPickup(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *RentalHandler) RegisterReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeError(w, domain.NewValidationError("Validation failed", msgs...))
		return
	}

	receipt, err := h.svc.RegisterReturn(r.Context(), req.BookingNumber, *req.ReturnDate, *req.ReturnMeterReading)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *RentalHandler) UpdateRental(w http.ResponseWriter, r *http.Request) {
	bookingNumber := mux.Vars(r)["bookingNumber"]

	var rental domain.Rental
	if err := json.NewDecoder(r.Body).Decode(&rental); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if bookingNumber != rental.BookingNumber {
		writeError(w, domain.NewValidationError("Booking number mismatch"))
		return
	}

	updated, err := h.svc.Update(r.Context(), &rental)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	bookingNumber := mux.Vars(r)["bookingNumber"]
	if err := h.svc.Delete(r.Context(), bookingNumber); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
