package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type appointmentEnv struct {
	router *gin.Engine
	store  *memory.Store

	professional models.Professional
	service      models.Service
	location     models.Location
}

func newAppointmentEnv(t *testing.T) *appointmentEnv {
	t.Helper()

	store := memory.NewStore()
	env := &appointmentEnv{
		store:        store,
		professional: store.AddProfessional(models.Professional{Name: "Dra. Ana", Specialty: "Dermatologia", Active: true}),
		service:      store.AddService(models.Service{Name: "Limpeza de pele", DurationMin: 40, Price: 150, Active: true}),
		location:     store.AddLocation(models.Location{Name: "Unidade Centro", Address: "Rua A, 100", Active: true}),
	}
	store.Assign(env.professional.ID, env.service.ID)

	h := NewAppointmentHandler(AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(store, store, nil),
		Update:   ucAppointment.NewUpdateAppointment(store, store, nil),
		Get:      ucAppointment.NewGetAppointment(store),
		List:     ucAppointment.NewListAppointments(store),
		Delete:   ucAppointment.NewDeleteAppointment(store, nil),
		Cancel:   ucAppointment.NewCancelAppointment(store, nil),
		Complete: ucAppointment.NewCompleteAppointment(store, nil),
		NoShow:   ucAppointment.NewMarkNoShow(store, nil),
	}, time.UTC, zerolog.Nop())

	r := gin.New()
	r.GET("/appointments", h.List)
	r.GET("/appointments/:id", h.Get)
	r.POST("/appointments", h.Create)
	r.PUT("/appointments/:id", h.Update)
	r.DELETE("/appointments/:id", h.Delete)
	r.PATCH("/appointments/:id/cancel", h.Cancel)
	r.PATCH("/appointments/:id/complete", h.Complete)
	r.PATCH("/appointments/:id/no-show", h.NoShow)
	env.router = r

	return env
}

func (e *appointmentEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *appointmentEnv) payload(start, end string) map[string]any {
	body := map[string]any{
		"serviceId":      e.service.ID,
		"professionalId": e.professional.ID,
		"locationId":     e.location.ID,
		"clientName":     "Felipe Henrique",
		"clientPhone":    "15999999999",
		"startTime":      start,
	}
	if end != "" {
		body["endTime"] = end
	}
	return body
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAppointmentHandler_Scenario(t *testing.T) {
	env := newAppointmentEnv(t)

	w := env.do(http.MethodPost, "/appointments", env.payload("2025-04-03T17:00:00Z", "2025-04-03T17:40:00Z"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.AppointmentDTO](t, w)
	assert.Equal(t, "scheduled", created.Status)
	require.NotNil(t, created.Service)
	assert.Equal(t, "Limpeza de pele", created.Service.Name)
	assert.Equal(t, 40, created.Service.Duration)
	require.NotNil(t, created.Professional)
	assert.Equal(t, "Dra. Ana", created.Professional.Name)
	require.NotNil(t, created.Location)
	assert.Equal(t, "Unidade Centro", created.Location.Name)

	w = env.do(http.MethodPost, "/appointments", env.payload("2025-04-03T17:10:00Z", "2025-04-03T17:30:00Z"))
	require.Equal(t, http.StatusConflict, w.Code)
	errBody := decode[httperr.HTTPError](t, w)
	assert.Equal(t, "time_conflict", errBody.Code)
	assert.Equal(t, "O profissional já possui um agendamento neste horário", errBody.Message)

	w = env.do(http.MethodDelete, "/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(http.MethodGet, "/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentHandler_CreateValidation(t *testing.T) {
	env := newAppointmentEnv(t)

	body := env.payload("2025-04-03T17:00:00Z", "")
	body["clientName"] = "Fe"
	body["professionalId"] = "not-a-uuid"
	delete(body, "clientPhone")

	w := env.do(http.MethodPost, "/appointments", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	out := decode[httperr.ValidationError](t, w)
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, "Dados inválidos.", out.Message)

	fields := map[string]bool{}
	for _, fe := range out.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["ClientName"])
	assert.True(t, fields["ProfessionalID"])
	assert.True(t, fields["ClientPhone"])
}

func TestAppointmentHandler_CreateInvalidStatus(t *testing.T) {
	env := newAppointmentEnv(t)

	body := env.payload("2025-04-03T17:00:00Z", "")
	body["status"] = "cancelled"

	w := env.do(http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentHandler_CreateUnknownReference(t *testing.T) {
	env := newAppointmentEnv(t)

	body := env.payload("2025-04-03T17:00:00Z", "")
	body["locationId"] = "7f1d3c1e-7a43-4a53-9a4c-3f0a1b2c3d4e"

	w := env.do(http.MethodPost, "/appointments", body)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Local não encontrado", decode[httperr.HTTPError](t, w).Message)
}

func TestAppointmentHandler_Update(t *testing.T) {
	env := newAppointmentEnv(t)

	w := env.do(http.MethodPost, "/appointments", env.payload("2025-04-03T10:00:00Z", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.AppointmentDTO](t, w)
	assert.Equal(t, time.Date(2025, 4, 3, 10, 40, 0, 0, time.UTC), created.EndTime.UTC())

	w = env.do(http.MethodPut, "/appointments/"+created.ID, map[string]any{
		"startTime": "2025-04-03T10:20:00Z",
		"endTime":   "2025-04-03T11:00:00Z",
		"notes":     "Paciente pediu para remarcar",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.AppointmentDTO](t, w)
	assert.Equal(t, "Paciente pediu para remarcar", updated.Notes)
	assert.Equal(t, "Felipe Henrique", updated.ClientName)

	w = env.do(http.MethodPut, "/appointments/"+created.ID, map[string]any{"clientPhone": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/appointments/7f1d3c1e-7a43-4a53-9a4c-3f0a1b2c3d4e", map[string]any{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentHandler_ListFilters(t *testing.T) {
	env := newAppointmentEnv(t)

	for _, start := range []string{
		"2025-04-30T15:00:00Z",
		"2025-03-31T15:00:00Z",
		"2025-04-01T15:00:00Z",
		"2025-05-01T15:00:00Z",
	} {
		w := env.do(http.MethodPost, "/appointments", env.payload(start, ""))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodGet, "/appointments?startDate=2025-04-01&endDate=2025-04-30&professionalId="+env.professional.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]dto.AppointmentDTO](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, time.Date(2025, 4, 1, 15, 0, 0, 0, time.UTC), list[0].StartTime.UTC())
	assert.Equal(t, time.Date(2025, 4, 30, 15, 0, 0, 0, time.UTC), list[1].StartTime.UTC())

	w = env.do(http.MethodGet, "/appointments?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(http.MethodGet, "/appointments?startDate=ontem", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/appointments?status=desconhecido", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentHandler_ListRejectsMalformedIDs(t *testing.T) {
	env := newAppointmentEnv(t)

	for _, param := range []string{"professionalId", "serviceId", "locationId"} {
		t.Run(param, func(t *testing.T) {
			w := env.do(http.MethodGet, "/appointments?"+param+"=abc", nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			body := decode[httperr.ValidationError](t, w)
			require.Len(t, body.Errors, 1)
			assert.Equal(t, "Identificador inválido.", body.Errors[0].Message)
		})
	}

	w := env.do(http.MethodGet, "/appointments?professionalId=7f1d3c1e-7a43-4a53-9a4c-3f0a1b2c3d4e", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAppointmentHandler_StatusTransitions(t *testing.T) {
	env := newAppointmentEnv(t)

	w := env.do(http.MethodPost, "/appointments", env.payload("2025-04-03T10:00:00Z", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[dto.AppointmentDTO](t, w).ID

	w = env.do(http.MethodPatch, "/appointments/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode[dto.AppointmentDTO](t, w).Status)

	w = env.do(http.MethodPatch, "/appointments/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_state", decode[httperr.HTTPError](t, w).Code)

	w = env.do(http.MethodPatch, "/appointments/nope/no-show", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
