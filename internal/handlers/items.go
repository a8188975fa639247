package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankadev/tripnest/internal/service"
)

// createItemRequest is the body of POST /v1/checklists/:checklistID/items.
type createItemRequest struct {
	Content string `json:"content"`
}

// updateItemRequest is the body of PATCH /v1/items/:itemID. Pointer fields
// distinguish "leave untouched" from an explicit value; at least one must be
// present.
type updateItemRequest struct {
	Content   *string `json:"content,omitempty"`
	IsChecked *bool   `json:"isChecked,omitempty"`
}

// reorderItemsRequest is the body of PUT /v1/checklists/:checklistID/items/order.
// ItemIDs must be an exact permutation of the checklist's current item ids.
type reorderItemsRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// CreateItem appends an item to the checklist.
func CreateItem(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		item, err := svc.CreateItem(c.Request.Context(), c.Param("checklistID"), req.Content)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateItem patches an item's content and/or checked state.
func UpdateItem(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		item, err := svc.UpdateItem(c.Request.Context(), c.Param("itemID"), req.Content, req.IsChecked)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DeleteItem removes an item.
func DeleteItem(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteItem(c.Request.Context(), c.Param("itemID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ReorderItems rewrites the checklist's item positions and returns the items
// in their new order.
func ReorderItems(svc *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reorderItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		items, err := svc.ReorderItems(c.Request.Context(), c.Param("checklistID"), req.ItemIDs)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
