package api

import (
	"net/http"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/internal/response"
	"webshop-partner-server/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateEnvRequest represents a client environment create request
type CreateEnvRequest struct {
	ClientID            string `json:"client_id" binding:"required"`
	LicenseKey          string `json:"license_key"`
	ClientSecret        string `json:"client_secret"`
	PNSSandboxDomain    string `json:"pns_sandbox_domain"`
	PNSCommercialDomain string `json:"pns_commercial_domain"`
}

// CreateClientEnvironment creates environment data for a client
// POST /onestore/env
func CreateClientEnvironment(c *gin.Context) {
	var req CreateEnvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	env := &models.ClientEnvironment{
		ClientID:            req.ClientID,
		LicenseKey:          req.LicenseKey,
		ClientSecret:        req.ClientSecret,
		PNSSandboxDomain:    req.PNSSandboxDomain,
		PNSCommercialDomain: req.PNSCommercialDomain,
	}

	svc := services.NewEnvService()
	if err := svc.Create(env); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Failed to create client environment: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  response.Result{Code: response.CodeOK, Message: "Client environment created successfully"},
		"envData": env,
	})
}

// ListClientEnvironments lists all client environment data
// GET /onestore/env
func ListClientEnvironments(c *gin.Context) {
	svc := services.NewEnvService()
	envs, err := svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to list client environments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      response.Result{Code: response.CodeOK, Message: "Client environments retrieved successfully"},
		"envDataList": envs,
	})
}

// GetClientEnvironment gets the environment data of one client
// GET /onestore/env/:client_id
func GetClientEnvironment(c *gin.Context) {
	clientID := c.Param("client_id")

	svc := services.NewEnvService()
	env, err := svc.GetByClientID(clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Client environment not found: " + clientID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  response.Result{Code: response.CodeOK, Message: "Client environment retrieved successfully"},
		"envData": env,
	})
}

// UpdateEnvRequest represents a partial client environment update; only
// provided fields are applied, client_id is immutable
type UpdateEnvRequest struct {
	LicenseKey          string `json:"license_key"`
	ClientSecret        string `json:"client_secret"`
	PNSSandboxDomain    string `json:"pns_sandbox_domain"`
	PNSCommercialDomain string `json:"pns_commercial_domain"`
}

// UpdateClientEnvironment updates the environment data of one client
// PUT /onestore/env/:client_id
func UpdateClientEnvironment(c *gin.Context) {
	clientID := c.Param("client_id")

	var req UpdateEnvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	updates := make(map[string]interface{})
	if req.LicenseKey != "" {
		updates["license_key"] = req.LicenseKey
	}
	if req.ClientSecret != "" {
		updates["client_secret"] = req.ClientSecret
	}
	if req.PNSSandboxDomain != "" {
		updates["pns_sandbox_domain"] = req.PNSSandboxDomain
	}
	if req.PNSCommercialDomain != "" {
		updates["pns_commercial_domain"] = req.PNSCommercialDomain
	}

	svc := services.NewEnvService()
	env, err := svc.Update(clientID, updates)
	if err != nil {
		if err == services.ErrEnvNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Client environment not found: " + clientID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update client environment: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  response.Result{Code: response.CodeOK, Message: "Client environment updated successfully"},
		"envData": env,
	})
}

// DeleteClientEnvironment deletes the environment data of one client
// DELETE /onestore/env/:client_id
func DeleteClientEnvironment(c *gin.Context) {
	clientID := c.Param("client_id")

	svc := services.NewEnvService()
	if err := svc.Delete(clientID); err != nil {
		if err == services.ErrEnvNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Client environment not found: " + clientID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete client environment: " + err.Error(),
		})
		return
	}

	response.JSON(c, http.StatusOK, response.OK("Client environment deleted successfully"))
}
