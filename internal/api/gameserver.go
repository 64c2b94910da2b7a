package api

import (
	"net/http"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/internal/response"
	"webshop-partner-server/internal/services"
	"webshop-partner-server/pkg/logging"

	"github.com/gin-gonic/gin"
)

// GameServerEntry is the wire form of one game server
type GameServerEntry struct {
	ServerID   string `json:"server_id"`
	ServerName string `json:"server_name"`
}

// ListGameServers lists the servers of a game
// GET /gameserver/:game_id/list
func ListGameServers(c *gin.Context) {
	gameID := c.Param("game_id")

	svc := services.NewGameService()
	servers, err := svc.ListServers(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to list game servers",
		})
		return
	}

	entries := make([]GameServerEntry, 0, len(servers))
	for _, server := range servers {
		entries = append(entries, GameServerEntry{ServerID: server.ServerID, ServerName: server.ServerName})
	}

	c.JSON(http.StatusOK, gin.H{
		"result":     response.Result{Code: response.CodeOK, Message: "Game servers retrieved successfully"},
		"serverList": entries,
	})
}

// CreateGameServersRequest registers servers for a game
type CreateGameServersRequest struct {
	GameID     string            `json:"game_id" binding:"required"`
	ServerList []GameServerEntry `json:"serverList" binding:"required"`
}

// CreateGameServers registers servers for a game
// POST /gameserver/create
func CreateGameServers(c *gin.Context) {
	var req CreateGameServersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	servers := make([]*models.GameServer, 0, len(req.ServerList))
	for _, entry := range req.ServerList {
		servers = append(servers, &models.GameServer{
			GameID:     req.GameID,
			ServerID:   entry.ServerID,
			ServerName: entry.ServerName,
		})
	}

	svc := services.NewGameService()
	if err := svc.CreateServers(servers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create game servers: " + err.Error(),
		})
		return
	}

	response.JSON(c, http.StatusOK, response.OK("Game servers created successfully"))
}

// DeleteGameServers removes all servers of a game
// DELETE /gameserver/:game_id
func DeleteGameServers(c *gin.Context) {
	gameID := c.Param("game_id")

	svc := services.NewGameService()
	if err := svc.DeleteServers(gameID); err != nil {
		if err == services.ErrGameRecordNotFound {
			response.JSON(c, http.StatusOK, response.NotFound("Game server not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete game servers: " + err.Error(),
		})
		return
	}

	response.JSON(c, http.StatusOK, response.OK("All game servers deleted successfully"))
}

// WebshopServerListRequest is the server list call made by the OneStore
// webshop page
type WebshopServerListRequest struct {
	Param struct {
		ProdID string `json:"prodId" binding:"required"`
	} `json:"param" binding:"required"`
}

// WebshopServerList lists the servers of a webshop product
// POST /onestore_webshop/serverlist
func WebshopServerList(c *gin.Context) {
	var req WebshopServerListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	svc := services.NewGameService()
	servers, err := svc.ListServers(req.Param.ProdID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to list game servers",
		})
		return
	}

	logging.Infof("Webshop(%s) server list: %d servers", req.Param.ProdID, len(servers))

	entries := make([]GameServerEntry, 0, len(servers))
	for _, server := range servers {
		entries = append(entries, GameServerEntry{ServerID: server.ServerID, ServerName: server.ServerName})
	}

	c.JSON(http.StatusOK, gin.H{
		"result":     response.Result{Code: response.CodeOK, Message: "Webshop(" + req.Param.ProdID + ") servers retrieved successfully"},
		"serverList": entries,
	})
}
