package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/domain/patient"
	"github.com/vollmed/clinic-api/internal/service"
	"github.com/vollmed/clinic-api/pkg/metrics"
)

type PatientHandler struct {
	svc       *service.PatientService
	collector *metrics.Collector
}

func NewPatientHandler(svc *service.PatientService, collector *metrics.Collector) *PatientHandler {
	return &PatientHandler{svc: svc, collector: collector}
}

type registerPatientRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Document string         `json:"document" binding:"required"`
	Phone    string         `json:"phone" binding:"required"`
	Address  domain.Address `json:"address" binding:"required"`
}

type updatePatientRequest struct {
	Name     *string         `json:"name"`
	Document *string         `json:"document"`
	Address  *domain.Address `json:"address"`
}

func (h *PatientHandler) Register(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Register(c.Request.Context(), &patient.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.PatientsRegisteredTotal.Inc()
	respondCreated(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), &patient.UpdateCommand{
		ID:       id,
		Name:     req.Name,
		Document: req.Document,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	page := parseQueryInt(c, "page", 1)
	pageSize := parseQueryInt(c, "page_size", 20)

	patients, total, err := h.svc.ListActive(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pagedResponse{Items: patients, Total: total, Page: page, PageSize: pageSize})
}
