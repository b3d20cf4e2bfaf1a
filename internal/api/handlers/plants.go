package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/middleware"
	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/database"
)

type PlantHandler struct {
	plants PlantStore
}

func NewPlantHandler(plants PlantStore) *PlantHandler {
	return &PlantHandler{plants: plants}
}

// List handles GET /plants
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	plants, err := h.plants.ListPlants(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nonNil(plants))
}

// ListMine handles GET /plants/seller
func (h *PlantHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	plants, err := h.plants.ListPlantsBySeller(r.Context(), middleware.GetUserEmail(r.Context()))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nonNil(plants))
}

// Get handles GET /plants/{id}
func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := database.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	plant, err := h.plants.FindPlant(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, plant)
}

// Create handles POST /plants
func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlantRequest
	if !decode(w, r, &req) {
		return
	}

	plant, err := h.plants.CreatePlant(r.Context(), req.ToPlant(middleware.GetUserEmail(r.Context())))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, plant)
}

// Delete handles DELETE /plants/{id}
func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := database.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	res, err := h.plants.DeletePlant(r.Context(), id, middleware.GetUserEmail(r.Context()))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// UpdateQuantity handles PATCH /plants/quantity/{id}
func (h *PlantHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := database.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	var req dto.QuantityRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.plants.AdjustQuantity(r.Context(), id, req.Delta())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}
