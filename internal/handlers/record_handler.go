package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"serverless-adapter/internal/middleware"
	"serverless-adapter/internal/services"
)

// RecordHandler handles record requests for one collection
type RecordHandler struct {
	recordService services.RecordService
	collection    string
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService services.RecordService, collection string) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		collection:    collection,
	}
}

// @Summary Create a record
// @Description Create a record in the collection. The response has no body.
// @Tags records
// @Accept json
// @Param record body services.RecordRequest true "Record data"
// @Success 201
// @Header 201 {string} Location "URL of the new record"
// @Failure 400 {object} middleware.ErrorResponse
// @Router /{collection} [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var req services.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badRequest(err, c.GetString(middleware.RequestIDKey)))
		return
	}

	record, err := h.recordService.Create(c.Request.Context(), h.collection, &req)
	if err != nil {
		c.JSON(errorResponse(err, c.GetString(middleware.RequestIDKey)))
		return
	}

	c.Header("Location", "/"+h.collection+"/"+record.ID)
	c.Status(http.StatusCreated)
}

// @Summary Create or rename a record
// @Tags records
// @Accept json
// @Produce json
// @Param record body services.RecordRequest true "Record data"
// @Success 200 {object} models.Record
// @Success 201 {object} models.Record
// @Failure 400 {object} middleware.ErrorResponse
// @Router /{collection} [put]
func (h *RecordHandler) Upsert(c *gin.Context) {
	var req services.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badRequest(err, c.GetString(middleware.RequestIDKey)))
		return
	}

	record, created, err := h.recordService.Upsert(c.Request.Context(), h.collection, &req)
	if err != nil {
		c.JSON(errorResponse(err, c.GetString(middleware.RequestIDKey)))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, record)
}

// @Summary List records
// @Tags records
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} services.RecordPage
// @Failure 400 {object} middleware.ErrorResponse
// @Router /{collection} [get]
func (h *RecordHandler) List(c *gin.Context) {
	page, err := queryInt(c.Query("page"), 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, middleware.NewErrorResponse(c, "Invalid query parameters", "page must be a positive integer"))
		return
	}
	pageSize, err := queryInt(c.Query("page_size"), services.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, middleware.NewErrorResponse(c, "Invalid query parameters", "page_size must be a positive integer"))
		return
	}

	result, err := h.recordService.List(c.Request.Context(), h.collection, page, pageSize)
	if err != nil {
		c.JSON(errorResponse(err, c.GetString(middleware.RequestIDKey)))
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Get a record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} models.Record
// @Failure 404 {object} middleware.ErrorResponse
// @Router /{collection}/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.recordService.Get(c.Request.Context(), h.collection, c.Param("id"))
	if err != nil {
		c.JSON(errorResponse(err, c.GetString(middleware.RequestIDKey)))
		return
	}

	c.JSON(http.StatusOK, record)
}

// queryInt parses a positive integer query value, returning fallback when empty
func queryInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
