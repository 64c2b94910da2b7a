package services

import (
	"errors"
	"webshop-partner-server/internal/database"
	"webshop-partner-server/internal/models"

	"gorm.io/gorm"
)

// ErrGameRecordNotFound indicates that no matching game server or user
// rows exist
var ErrGameRecordNotFound = errors.New("game record not found")

// GameService manages the game server and game user registries
type GameService struct {
	db *gorm.DB
}

// NewGameService creates a new game service
func NewGameService() *GameService {
	return &GameService{
		db: database.GetDB(),
	}
}

// ListServers returns all servers of a game
func (s *GameService) ListServers(gameID string) ([]*models.GameServer, error) {
	var servers []*models.GameServer
	if result := s.db.Where("game_id = ?", gameID).Find(&servers); result.Error != nil {
		return nil, result.Error
	}
	return servers, nil
}

// CreateServers registers servers for a game
func (s *GameService) CreateServers(servers []*models.GameServer) error {
	return s.db.Create(servers).Error
}

// DeleteServers removes all servers of a game
func (s *GameService) DeleteServers(gameID string) error {
	result := s.db.Where("game_id = ?", gameID).Delete(&models.GameServer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameRecordNotFound
	}
	return nil
}

// ListUsers returns all users of a game
func (s *GameService) ListUsers(gameID string) ([]*models.GameUser, error) {
	var users []*models.GameUser
	if result := s.db.Where("game_id = ?", gameID).Find(&users); result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// CreateUsers registers users for a game
func (s *GameService) CreateUsers(users []*models.GameUser) error {
	return s.db.Create(users).Error
}

// DeleteUser removes a user of a game
func (s *GameService) DeleteUser(gameID, userID string) error {
	result := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).Delete(&models.GameUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameRecordNotFound
	}
	return nil
}

// FindUser looks up one user on a specific server of a game
func (s *GameService) FindUser(gameID, userID, serverID string) (*models.GameUser, error) {
	var user models.GameUser
	result := s.db.Where("game_id = ? AND user_id = ? AND server_id = ?", gameID, userID, serverID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGameRecordNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
