package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"serverless-adapter/internal/models"
	"serverless-adapter/internal/services"
)

// NewEchoApp builds the echo variant of the demo application
func NewEchoApp(recordService services.RecordService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthBody())
	})
	e.Any("/inspect", echo.WrapHandler(http.HandlerFunc(Inspect)))

	for _, collection := range []string{models.CollectionUsers, models.CollectionCollaborators} {
		h := NewRecordHandler(recordService, collection)
		g := e.Group("/" + collection)
		g.GET("", h.listEcho)
		g.POST("", h.createEcho)
		g.PUT("", h.upsertEcho)
		g.GET("/:id", h.getEcho)
	}

	return e
}

func (h *RecordHandler) createEcho(c echo.Context) error {
	var req services.RecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err, ""))
	}

	record, err := h.recordService.Create(c.Request().Context(), h.collection, &req)
	if err != nil {
		return c.JSON(errorResponse(err, ""))
	}

	c.Response().Header().Set("Location", "/"+h.collection+"/"+record.ID)
	return c.NoContent(http.StatusCreated)
}

func (h *RecordHandler) upsertEcho(c echo.Context) error {
	var req services.RecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err, ""))
	}

	record, created, err := h.recordService.Upsert(c.Request().Context(), h.collection, &req)
	if err != nil {
		return c.JSON(errorResponse(err, ""))
	}

	if created {
		return c.JSON(http.StatusCreated, record)
	}
	return c.JSON(http.StatusOK, record)
}

func (h *RecordHandler) listEcho(c echo.Context) error {
	page, err := queryInt(c.QueryParam("page"), 1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err, ""))
	}
	pageSize, err := queryInt(c.QueryParam("page_size"), services.DefaultPageSize)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err, ""))
	}

	result, err := h.recordService.List(c.Request().Context(), h.collection, page, pageSize)
	if err != nil {
		return c.JSON(errorResponse(err, ""))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *RecordHandler) getEcho(c echo.Context) error {
	record, err := h.recordService.Get(c.Request().Context(), h.collection, c.Param("id"))
	if err != nil {
		return c.JSON(errorResponse(err, ""))
	}
	return c.JSON(http.StatusOK, record)
}
