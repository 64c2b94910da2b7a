package api

import (
	"encoding/json"
	"net/http"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/internal/response"
	"webshop-partner-server/internal/services"
	"webshop-partner-server/pkg/logging"

	"github.com/gin-gonic/gin"
)

// PaymentType is one payment method entry of a PNS message
type PaymentType struct {
	PaymentMethod string      `json:"paymentMethod"`
	Amount        json.Number `json:"amount"`
}

// PNSRequest is the OneStore PNS notification payload.
//
//   - msgVersion: 3.1.0 (commercial) or 3.1.0D (sandbox)
//   - purchaseState: COMPLETED / CANCELED
//   - environment: SANDBOX / COMMERCIAL
//   - marketCode: MKT_ONE / MKT_GLB
type PNSRequest struct {
	MsgVersion         string        `json:"msgVersion"`
	ClientID           string        `json:"clientId" binding:"required"`
	ProductID          string        `json:"productId" binding:"required"`
	MessageType        string        `json:"messageType"`
	PurchaseID         string        `json:"purchaseId" binding:"required"`
	DeveloperPayload   string        `json:"developerPayload"`
	PurchaseTimeMillis int64         `json:"purchaseTimeMillis"`
	PurchaseState      string        `json:"purchaseState" binding:"required,oneof=COMPLETED CANCELED"`
	Price              string        `json:"price"`
	PriceCurrencyCode  string        `json:"priceCurrencyCode"`
	ProductName        string        `json:"productName"`
	PaymentTypeList    []PaymentType `json:"paymentTypeList"`
	BillingKey         string        `json:"billingKey"`
	IsTestMdn          bool          `json:"isTestMdn"`
	PurchaseToken      string        `json:"purchaseToken" binding:"required"`
	Environment        string        `json:"environment"`
	MarketCode         string        `json:"marketCode"`
	Signature          string        `json:"signature"`
	ServiceUserID      string        `json:"serviceUserId"`
	ServiceServerID    string        `json:"serviceServerId"`
}

// toModel converts the payload into its stored form. The payment type
// list and the full payload are kept as JSON strings.
func (req *PNSRequest) toModel() *models.PurchaseNotification {
	paymentTypes, _ := json.Marshal(req.PaymentTypeList)
	rawData, _ := json.Marshal(req)

	return &models.PurchaseNotification{
		MsgVersion:         req.MsgVersion,
		ClientID:           req.ClientID,
		ProductID:          req.ProductID,
		MessageType:        req.MessageType,
		PurchaseID:         req.PurchaseID,
		DeveloperPayload:   req.DeveloperPayload,
		PurchaseTimeMillis: req.PurchaseTimeMillis,
		PurchaseState:      req.PurchaseState,
		Price:              req.Price,
		PriceCurrencyCode:  req.PriceCurrencyCode,
		ProductName:        req.ProductName,
		PaymentTypes:       string(paymentTypes),
		BillingKey:         req.BillingKey,
		IsTestMdn:          req.IsTestMdn,
		PurchaseToken:      req.PurchaseToken,
		Environment:        req.Environment,
		MarketCode:         req.MarketCode,
		Signature:          req.Signature,
		RawData:            string(rawData),
		ServiceUserID:      req.ServiceUserID,
		ServiceServerID:    req.ServiceServerID,
	}
}

// ReceivePNSNotification handles the commercial PNS channel
// POST /onestore_pns/notification
//
// The notification is recorded durably before the consume call is
// attempted, so a slow or failed consume cannot lose it. Duplicate
// deliveries of the same purchaseId are acknowledged without side
// effects.
func ReceivePNSNotification(c *gin.Context) {
	var req PNSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Errorf("Invalid PNS payload: %v", err)
		c.JSON(http.StatusBadRequest, response.PNS{
			Success: false,
			Message: "Invalid notification format: " + err.Error(),
		})
		return
	}

	logging.Infof("PNS received: purchaseId=%s, state=%s", req.PurchaseID, req.PurchaseState)

	svc := services.NewNotificationService(purchaseConsumer)

	processed, err := svc.AlreadyProcessed(req.PurchaseID)
	if err != nil {
		logging.Errorf("Failed to look up purchaseId=%s: %v", req.PurchaseID, err)
		c.JSON(http.StatusInternalServerError, response.PNS{
			Success: false,
			Message: "Database error",
		})
		return
	}
	if processed {
		logging.Warnf("Already processed purchaseId: %s", req.PurchaseID)
		c.JSON(http.StatusOK, response.PNS{
			Success:    true,
			Message:    "Already processed",
			PurchaseID: req.PurchaseID,
		})
		return
	}

	notification := req.toModel()
	if err := svc.Record(notification); err != nil {
		if err == services.ErrDuplicatePurchase {
			// Lost the race against a concurrent delivery; the other
			// request owns the side effects
			logging.Warnf("Duplicate purchaseId at insert: %s", req.PurchaseID)
			c.JSON(http.StatusOK, response.PNS{
				Success:    true,
				Message:    "Already processed (duplicate)",
				PurchaseID: req.PurchaseID,
			})
			return
		}
		logging.Errorf("Failed to record PNS purchaseId=%s: %v", req.PurchaseID, err)
		c.JSON(http.StatusInternalServerError, response.PNS{
			Success: false,
			Message: "Database error",
		})
		return
	}

	if err := svc.HandlePurchaseState(notification, services.EnvCommercial); err != nil {
		c.JSON(http.StatusInternalServerError, response.PNS{
			Success: false,
			Message: "Internal server error: " + err.Error(),
		})
		return
	}

	if req.IsTestMdn {
		logging.Warnf("Test device purchase: purchaseId=%s", req.PurchaseID)
	}

	c.JSON(http.StatusOK, response.PNS{
		Success:    true,
		Message:    "Notification received successfully",
		PurchaseID: req.PurchaseID,
	})
}

// ReceivePNSSandboxNotification handles the sandbox PNS channel
// POST /onestore_pns/sandbox
//
// Sandbox deliveries are not persisted and not deduplicated; a COMPLETED
// purchase is consumed directly against the sandbox environment.
func ReceivePNSSandboxNotification(c *gin.Context) {
	var req PNSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Errorf("Invalid PNS payload: %v", err)
		c.JSON(http.StatusBadRequest, response.PNS{
			Success: false,
			Message: "Invalid notification format: " + err.Error(),
		})
		return
	}

	logging.Infof("Sandbox PNS received: purchaseId=%s, state=%s", req.PurchaseID, req.PurchaseState)

	svc := services.NewNotificationService(purchaseConsumer)
	if err := svc.HandlePurchaseState(req.toModel(), services.EnvSandbox); err != nil {
		c.JSON(http.StatusInternalServerError, response.PNS{
			Success: false,
			Message: "Internal server error: " + err.Error(),
		})
		return
	}

	if req.IsTestMdn {
		logging.Warnf("Sandbox test device purchase: purchaseId=%s", req.PurchaseID)
	}

	c.JSON(http.StatusOK, response.PNS{
		Success:    true,
		Message:    "Notification received successfully",
		PurchaseID: req.PurchaseID,
	})
}
