package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cascadeService "docmanager-backend/internal/domains/cascade/service"
	"docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/domains/document/service"
	"docmanager-backend/internal/shared/response"
	"docmanager-backend/internal/shared/utils"
)

type DocumentHandler struct {
	service  service.ServiceInterface
	producer cascadeService.ProducerInterface
}

func NewDocumentHandler(svc service.ServiceInterface, producer cascadeService.ProducerInterface) *DocumentHandler {
	return &DocumentHandler{
		service:  svc,
		producer: producer,
	}
}

// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req model.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, d.ToResponse())
}

// GET /api/v1/documents
func (h *DocumentHandler) GetAll(c *gin.Context) {
	docs, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]*model.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ToResponse())
	}
	response.SuccessWithMeta(c, http.StatusOK, out, &response.Meta{Total: len(out)})
}

// GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d.ToResponse())
}

// PUT /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d.ToResponse())
}

// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Delete Successfully"})
}

// DELETE /api/v1/documents/queue/:id
func (h *DocumentHandler) DeleteViaQueue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	receipt, err := h.producer.RequestDocumentDeletion(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, receipt)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}
