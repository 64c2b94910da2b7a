package response

import (
	"github.com/gin-gonic/gin"
)

// Result codes used by the webshop endpoints. "0000" means success,
// "0001" means the requested record was not found.
const (
	CodeOK       = "0000"
	CodeNotFound = "0001"
)

// Result is the common result envelope of the registry endpoints
type Result struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Base is a response carrying only a result envelope
type Base struct {
	Result Result `json:"result"`
}

// PNS is the response body of the PNS notification endpoints
type PNS struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	PurchaseID string `json:"purchaseId"`
}

// OK returns a success envelope
func OK(message string) Base {
	return Base{Result: Result{Code: CodeOK, Message: message}}
}

// NotFound returns a not-found envelope
func NotFound(message string) Base {
	return Base{Result: Result{Code: CodeNotFound, Message: message}}
}

// JSON sends a JSON response
func JSON(c *gin.Context, statusCode int, body interface{}) {
	c.JSON(statusCode, body)
}
