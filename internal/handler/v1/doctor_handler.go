package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
	"github.com/vollmed/clinic-api/internal/service"
	"github.com/vollmed/clinic-api/pkg/metrics"
)

type DoctorHandler struct {
	svc       *service.DoctorService
	collector *metrics.Collector
}

func NewDoctorHandler(svc *service.DoctorService, collector *metrics.Collector) *DoctorHandler {
	return &DoctorHandler{svc: svc, collector: collector}
}

type registerDoctorRequest struct {
	Name      string           `json:"name" binding:"required"`
	Phone     string           `json:"phone" binding:"required"`
	Email     string           `json:"email" binding:"required,email"`
	Document  string           `json:"document" binding:"required"`
	Specialty doctor.Specialty `json:"specialty" binding:"required"`
	Address   domain.Address   `json:"address" binding:"required"`
}

type updateDoctorRequest struct {
	Name     *string         `json:"name"`
	Document *string         `json:"document"`
	Address  *domain.Address `json:"address"`
}

type pagedResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func (h *DoctorHandler) Register(c *gin.Context) {
	var req registerDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Register(c.Request.Context(), &doctor.RegisterCommand{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Document:  req.Document,
		Specialty: req.Specialty,
		Address:   req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.DoctorsRegisteredTotal.Inc()
	respondCreated(c, d)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Update(c.Request.Context(), &doctor.UpdateCommand{
		ID:       id,
		Name:     req.Name,
		Document: req.Document,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) Deactivate(c *gin.Context) {
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

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) List(c *gin.Context) {
	page := parseQueryInt(c, "page", 1)
	pageSize := parseQueryInt(c, "page_size", 20)

	doctors, total, err := h.svc.ListActive(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pagedResponse{Items: doctors, Total: total, Page: page, PageSize: pageSize})
}
