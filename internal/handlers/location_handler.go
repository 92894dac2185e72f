package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type LocationHandler struct {
	db    *gorm.DB
	cache CacheInvalidator
}

func NewLocationHandler(db *gorm.DB, cache CacheInvalidator) *LocationHandler {
	return &LocationHandler{db: db, cache: cache}
}

type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  *bool   `json:"isActive,omitempty"`
}

func (h *LocationHandler) List(c *gin.Context) {
	q := applyListFilters(c, h.db.WithContext(c.Request.Context()), "name", "address")

	var locations []models.Location
	if err := q.Order("name ASC").Find(&locations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_locations", "Erro ao listar locais.")
		return
	}

	httpresp.OK(c, locations)
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	location := models.Location{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&location).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "Erro ao criar local.")
		return
	}

	httpresp.Created(c, location)
}

func (h *LocationHandler) Update(c *gin.Context) {
	var location models.Location
	id, ok := findByID(c, h.db, &location, "id", "location_not_found", "Local não encontrado")
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.Phone != nil {
		location.Phone = *req.Phone
	}
	if req.Active != nil {
		location.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&location).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Erro ao atualizar local.")
		return
	}

	invalidate(h.cache, c, "location", id)
	httpresp.OK(c, location)
}
