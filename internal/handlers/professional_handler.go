package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ProfessionalHandler struct {
	db    *gorm.DB
	cache CacheInvalidator
}

func NewProfessionalHandler(db *gorm.DB, cache CacheInvalidator) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, cache: cache}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required,min=3"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=3"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"isActive,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		Preload("Locations")
	q = applyListFilters(c, q, "name", "specialty")

	var professionals []models.Professional
	if err := q.
		Order("name ASC").
		Find(&professionals).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.OK(c, professionals)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	professional := models.Professional{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Active:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, professional)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	var professional models.Professional
	id, ok := findByID(c, h.db, &professional, "id", "professional_not_found", "Profissional não encontrado")
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Name != nil {
		professional.Name = *req.Name
	}
	if req.Email != nil {
		professional.Email = *req.Email
	}
	if req.Phone != nil {
		professional.Phone = *req.Phone
	}
	if req.Specialty != nil {
		professional.Specialty = *req.Specialty
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Omit(clause.Associations).Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	invalidate(h.cache, c, "professional", id)
	httpresp.OK(c, professional)
}

// ======================================================
// CAPACIDADE (profissional ↔ serviço)
// ======================================================

func (h *ProfessionalHandler) AssignService(c *gin.Context) {
	var professional models.Professional
	professionalID, ok := findByID(c, h.db, &professional, "id", "professional_not_found", "Profissional não encontrado")
	if !ok {
		return
	}

	var service models.Service
	serviceID, ok := findByID(c, h.db, &service, "serviceId", "service_not_found", "Serviço não encontrado")
	if !ok {
		return
	}

	link := models.ProfessionalService{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
	}

	if err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error; err != nil {

		httperr.Internal(c, "failed_to_assign_service", "Erro ao vincular serviço.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfessionalHandler) RevokeService(c *gin.Context) {
	professionalID, serviceID := c.Param("id"), c.Param("serviceId")
	if uuid.Validate(professionalID) != nil || uuid.Validate(serviceID) != nil {
		httperr.NotFound(c, "capability_not_found", "Vínculo não encontrado")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		Delete(&models.ProfessionalService{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_revoke_service", "Erro ao desvincular serviço.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "capability_not_found", "Vínculo não encontrado")
		return
	}

	c.Status(http.StatusNoContent)
}
