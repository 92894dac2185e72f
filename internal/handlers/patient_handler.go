package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type CreatePatientRequest struct {
	Name  string `json:"name" binding:"required,min=3"`
	Phone string `json:"phone" binding:"omitempty,min=8"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes"`
}

type UpdatePatientRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=3"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,min=8"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes  *string `json:"notes,omitempty"`
	Active *bool   `json:"isActive,omitempty"`
}

// ======================================================
// LIST PATIENTS
// ======================================================
func (h *PatientHandler) List(c *gin.Context) {
	q := applyListFilters(c, h.db.WithContext(c.Request.Context()), "name", "phone", "email")

	var patients []models.Patient
	if err := q.
		Order("created_at DESC").
		Find(&patients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_patients", "Erro ao listar pacientes.")
		return
	}

	httpresp.OK(c, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	patient := models.Patient{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Notes:  req.Notes,
		Active: true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Erro ao cadastrar paciente.")
		return
	}

	httpresp.Created(c, patient)
}

// Update também faz a exclusão lógica (isActive=false).
func (h *PatientHandler) Update(c *gin.Context) {
	var patient models.Patient
	if _, ok := findByID(c, h.db, &patient, "id", "patient_not_found", "Paciente não encontrado"); !ok {
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	if req.Active != nil {
		patient.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "Erro ao atualizar paciente.")
		return
	}

	httpresp.OK(c, patient)
}
