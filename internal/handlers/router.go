// Package handlers exposes the checklist engine over REST. Handlers stay
// thin: bind the request, call the service, map the error kind to a status.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ankadev/tripnest/internal/auth"
	"github.com/ankadev/tripnest/internal/middleware"
	"github.com/ankadev/tripnest/internal/service"
)

// NewRouter builds the gin engine with middleware and all checklist routes.
// Everything under /v1 requires a valid bearer token; /healthz and /metrics
// are open for probes and scrapers.
func NewRouter(checklists *service.ChecklistService, items *service.ItemService, verifier *auth.Verifier) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1", middleware.Identity(verifier))

	v1.GET("/trips/:tripID/checklists", ListChecklists(checklists))
	v1.POST("/trips/:tripID/checklists", CreateChecklist(checklists))
	v1.PATCH("/checklists/:checklistID", RenameChecklist(checklists))
	v1.DELETE("/checklists/:checklistID", DeleteChecklist(checklists))

	v1.POST("/checklists/:checklistID/items", CreateItem(items))
	v1.PUT("/checklists/:checklistID/items/order", ReorderItems(items))
	v1.PATCH("/items/:itemID", UpdateItem(items))
	v1.DELETE("/items/:itemID", DeleteItem(items))

	return router
}

// writeError maps a service error kind to an HTTP status. Validation,
// missing-row, and conflict failures carry their message to the client;
// anything internal stays opaque.
func writeError(c *gin.Context, err error) {
	var status int
	switch service.KindOf(err) {
	case service.KindInvalidArgument:
		status = http.StatusBadRequest
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	c.Error(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
