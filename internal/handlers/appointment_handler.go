package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create   *ucAppointment.CreateAppointment
	Update   *ucAppointment.UpdateAppointment
	Get      *ucAppointment.GetAppointment
	List     *ucAppointment.ListAppointments
	Delete   *ucAppointment.DeleteAppointment
	Cancel   *ucAppointment.ChangeAppointmentStatus
	Complete *ucAppointment.ChangeAppointmentStatus
	NoShow   *ucAppointment.ChangeAppointmentStatus
}

type AppointmentHandler struct {
	uc     AppointmentUseCases
	loc    *time.Location
	logger zerolog.Logger
}

func NewAppointmentHandler(
	uc AppointmentUseCases,
	loc *time.Location,
	logger zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		uc:     uc,
		loc:    loc,
		logger: logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID      string     `json:"serviceId" binding:"required,uuid"`
	ProfessionalID string     `json:"professionalId" binding:"required,uuid"`
	LocationID     string     `json:"locationId" binding:"required,uuid"`
	ClientName     string     `json:"clientName" binding:"required,min=3"`
	ClientPhone    string     `json:"clientPhone" binding:"required,min=8"`
	StartTime      time.Time  `json:"startTime" binding:"required"`
	EndTime        *time.Time `json:"endTime"`
	Notes          string     `json:"notes"`
	Status         string     `json:"status" binding:"omitempty,oneof=scheduled completed canceled no_show"`
}

type UpdateAppointmentRequest struct {
	ServiceID      *string    `json:"serviceId" binding:"omitempty,uuid"`
	ProfessionalID *string    `json:"professionalId" binding:"omitempty,uuid"`
	LocationID     *string    `json:"locationId" binding:"omitempty,uuid"`
	ClientName     *string    `json:"clientName" binding:"omitempty,min=3"`
	ClientPhone    *string    `json:"clientPhone" binding:"omitempty,min=8"`
	StartTime      *time.Time `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	Notes          *string    `json:"notes"`
	Status         *string    `json:"status" binding:"omitempty,oneof=scheduled completed canceled no_show"`
}

// ListAppointmentsQuery: ids mal formados viram 400 antes de chegar ao banco.
type ListAppointmentsQuery struct {
	ProfessionalID string `form:"professionalId" binding:"omitempty,uuid"`
	ServiceID      string `form:"serviceId" binding:"omitempty,uuid"`
	LocationID     string `form:"locationId" binding:"omitempty,uuid"`
	Status         string `form:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		LocationID:     req.LocationID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
		Status:         req.Status,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:             id,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		LocationID:     req.LocationID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
		Status:         req.Status,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	if ap == nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado")
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	var query ListAppointmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.Invalid(c, err)
		return
	}

	filter := domain.Filter{
		ProfessionalID: query.ProfessionalID,
		ServiceID:      query.ServiceID,
		LocationID:     query.LocationID,
		Status:         domain.Status(query.Status),
	}

	if raw := c.Query("startDate"); raw != "" {
		start, err := timezone.ParseBound(raw, h.loc, false)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		filter.StartDate = &start
	}

	if raw := c.Query("endDate"); raw != "" {
		end, err := timezone.ParseBound(raw, h.loc, true)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		filter.EndDate = &end
	}

	apps, err := h.uc.List.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointments(apps))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.uc.Cancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.uc.Complete)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, h.uc.NoShow)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc *ucAppointment.ChangeAppointmentStatus) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ids fora do formato nunca existem no banco
func appointmentID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado")
		return "", false
	}
	return id, true
}
