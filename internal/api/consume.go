package api

import (
	"fmt"
	"net/http"
	"webshop-partner-server/internal/response"
	"webshop-partner-server/pkg/logging"

	"github.com/gin-gonic/gin"
)

// ForceConsumeRequest triggers a consume outside the PNS flow, e.g. to
// retry a purchase whose consume failed.
type ForceConsumeRequest struct {
	ClientID         string `json:"clientId" binding:"required"`
	ProductID        string `json:"productId" binding:"required"`
	PurchaseToken    string `json:"purchaseToken" binding:"required"`
	DeveloperPayload string `json:"developerPayload"`
	Environment      string `json:"environment" binding:"required,oneof=SANDBOX COMMERCIAL"`
}

// ForceConsume consumes a purchase on demand
// POST /onestore_webshop/consume
func ForceConsume(c *gin.Context) {
	var req ForceConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := purchaseConsumer.ConsumePurchase(req.ClientID, req.ProductID, req.PurchaseToken, req.DeveloperPayload, req.Environment)
	if err != nil {
		logging.Errorf("Force consume failed: purchase_token=%s, error=%v", req.PurchaseToken, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Result{
		Code:    "",
		Message: fmt.Sprintf("%v", result),
	})
}
