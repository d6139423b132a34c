package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

// AddressHandler manages the caller's saved delivery addresses.
// Addresses without coordinates are geocoded on save so checkout does
// not pay the lookup.
type AddressHandler struct {
	Repo     ports.AddressRepository
	Resolver ports.LocationResolver
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	addrs, err := h.Repo.ListAddresses(r.Context(), userID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	res := dto.ListAddressesResponse{Addresses: make([]dto.AddressResponse, 0, len(addrs))}
	for _, a := range addrs {
		res.Addresses = append(res.Addresses, toAddressResponse(a))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	addr, err := h.Repo.GetAddress(r.Context(), userID, r.PathValue("addressID"))
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAddressResponse(addr))
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	addr, ok := h.addressFromBody(w, r, userID, uuid.NewString())
	if !ok {
		return
	}

	if err := h.Repo.CreateAddress(r.Context(), addr); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toAddressResponse(addr))
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	addr, ok := h.addressFromBody(w, r, userID, r.PathValue("addressID"))
	if !ok {
		return
	}

	if err := h.Repo.UpdateAddress(r.Context(), addr); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAddressResponse(addr))
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Repo.DeleteAddress(r.Context(), userID, r.PathValue("addressID")); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Repo.SetDefault(r.Context(), userID, r.PathValue("addressID")); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AddressHandler) addressFromBody(w http.ResponseWriter, r *http.Request, userID, addressID string) (*domain.Address, bool) {
	var req dto.AddressRequest
	if !readJSON(w, r, &req) {
		return nil, false
	}
	if strings.TrimSpace(req.Line) == "" {
		writeError(w, r, http.StatusBadRequest, "line is required")
		return nil, false
	}

	addr := &domain.Address{
		AddressID:   addressID,
		UserID:      userID,
		Label:       req.Label,
		Recipient:   req.Recipient,
		Phone:       req.Phone,
		Line:        req.Line,
		Ward:        req.Ward,
		City:        req.City,
		Coordinates: domain.Coordinates{Lon: req.Lon, Lat: req.Lat},
	}

	if addr.Coordinates.IsZero() {
		text := req.Line
		if req.Ward != "" {
			text += ", " + req.Ward
		}
		if req.City != "" {
			text += ", " + req.City
		}
		addr.Coordinates = h.Resolver.ResolveAddress(r.Context(), text)
	}

	return addr, true
}
