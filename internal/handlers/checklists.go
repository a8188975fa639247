package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankadev/tripnest/internal/middleware"
	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/service"
)

// createChecklistRequest is the body of POST /v1/trips/:tripID/checklists.
// Name may be blank; the service substitutes the type's canonical label.
type createChecklistRequest struct {
	Name string               `json:"name"`
	Type models.ChecklistType `json:"type"`
}

// renameChecklistRequest is the body of PATCH /v1/checklists/:checklistID.
type renameChecklistRequest struct {
	Name string `json:"name"`
}

// ListChecklists returns the trip's checklists visible to the caller,
// provisioning the personal and group defaults first.
func ListChecklists(svc *service.ChecklistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		checklists, err := svc.ListChecklists(c.Request.Context(), c.Param("tripID"), middleware.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checklists": checklists})
	}
}

// CreateChecklist explicitly creates a checklist on the trip.
func CreateChecklist(svc *service.ChecklistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createChecklistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		checklist, err := svc.CreateChecklist(c.Request.Context(), c.Param("tripID"), middleware.UserID(c), req.Name, req.Type)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, checklist)
	}
}

// RenameChecklist updates a checklist's display name.
func RenameChecklist(svc *service.ChecklistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req renameChecklistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		checklist, err := svc.RenameChecklist(c.Request.Context(), c.Param("checklistID"), req.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, checklist)
	}
}

// DeleteChecklist removes a checklist and its items.
func DeleteChecklist(svc *service.ChecklistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteChecklist(c.Request.Context(), c.Param("checklistID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
