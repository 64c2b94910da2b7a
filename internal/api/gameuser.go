package api

import (
	"net/http"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/internal/response"
	"webshop-partner-server/internal/services"
	"webshop-partner-server/pkg/logging"

	"github.com/gin-gonic/gin"
)

// GameUserEntry is the wire form of one game user
type GameUserEntry struct {
	UserID   string `json:"user_id"`
	ServerID string `json:"server_id"`
}

// CreateGameUsersRequest registers users for a game
type CreateGameUsersRequest struct {
	GameID   string          `json:"game_id" binding:"required"`
	UserList []GameUserEntry `json:"userList" binding:"required"`
}

// CreateGameUsers registers users for a game
// POST /gameuser/create
func CreateGameUsers(c *gin.Context) {
	var req CreateGameUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	users := make([]*models.GameUser, 0, len(req.UserList))
	for _, entry := range req.UserList {
		users = append(users, &models.GameUser{
			GameID:   req.GameID,
			UserID:   entry.UserID,
			ServerID: entry.ServerID,
		})
	}

	svc := services.NewGameService()
	if err := svc.CreateUsers(users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create game users: " + err.Error(),
		})
		return
	}

	response.JSON(c, http.StatusOK, response.OK("Game users created successfully"))
}

// DeleteGameUser removes a user of a game
// DELETE /gameuser/:game_id/:user_id
func DeleteGameUser(c *gin.Context) {
	gameID := c.Param("game_id")
	userID := c.Param("user_id")

	svc := services.NewGameService()
	if err := svc.DeleteUser(gameID, userID); err != nil {
		if err == services.ErrGameRecordNotFound {
			response.JSON(c, http.StatusOK, response.NotFound("Game user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete game user: " + err.Error(),
		})
		return
	}

	response.JSON(c, http.StatusOK, response.OK("Game user deleted successfully"))
}

// ListGameUsers lists the users of a game
// GET /gameuser/:game_id/list
func ListGameUsers(c *gin.Context) {
	gameID := c.Param("game_id")

	svc := services.NewGameService()
	users, err := svc.ListUsers(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to list game users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":   response.Result{Code: response.CodeOK, Message: "Game users retrieved successfully"},
		"userList": users,
	})
}

// CheckGameUserRequest is the user check call made by the OneStore
// webshop page before offering a purchase
type CheckGameUserRequest struct {
	Param struct {
		ParentProdID    string `json:"parentProdId" binding:"required"`
		ProdID          string `json:"prodId"`
		ServiceUserID   string `json:"serviceUserId" binding:"required"`
		ServiceServerID string `json:"serviceServerId" binding:"required"`
	} `json:"param" binding:"required"`
}

// CheckGameUser verifies that a user is registered on a game server
// POST /gameuser/check
func CheckGameUser(c *gin.Context) {
	var req CheckGameUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format: " + err.Error(),
		})
		return
	}

	svc := services.NewGameService()
	user, err := svc.FindUser(req.Param.ParentProdID, req.Param.ServiceUserID, req.Param.ServiceServerID)
	if err != nil {
		logging.Errorf("%s is not registered on game server %s. parent product: %s, in-app product: %s",
			req.Param.ServiceUserID, req.Param.ServiceServerID, req.Param.ParentProdID, req.Param.ProdID)
		c.JSON(http.StatusOK, gin.H{
			"result":   response.Result{Code: response.CodeNotFound, Message: "User not found"},
			"gameUser": nil,
		})
		return
	}

	logging.Infof("%s is registered on game server %s. parent product: %s, in-app product: %s",
		req.Param.ServiceUserID, req.Param.ServiceServerID, req.Param.ParentProdID, req.Param.ProdID)

	c.JSON(http.StatusOK, gin.H{
		"result":   response.Result{Code: response.CodeOK, Message: "User found"},
		"gameUser": user,
	})
}
