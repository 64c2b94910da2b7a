package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"webshop-partner-server/internal/database"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/pkg/logging"

	"gorm.io/gorm"
)

// Errors of the client environment registry
var (
	ErrEnvNotFound = errors.New("client environment not found")
	ErrEnvExists   = errors.New("client environment already exists")
)

const envCacheTTL = 5 * time.Minute

// EnvService manages the OneStore client environment registry
type EnvService struct {
	db *gorm.DB
}

// NewEnvService creates a new env service
func NewEnvService() *EnvService {
	return &EnvService{
		db: database.GetDB(),
	}
}

func envCacheKey(clientID string) string {
	return "onestore_env:" + clientID
}

// GetByClientID gets the environment data for a client id. Reads go
// through the Redis cache when it is enabled.
func (s *EnvService) GetByClientID(clientID string) (*models.ClientEnvironment, error) {
	ctx := context.Background()

	if database.CacheEnabled() {
		if cached, err := database.GetCache(ctx, envCacheKey(clientID)); err == nil {
			var env models.ClientEnvironment
			if err := json.Unmarshal([]byte(cached), &env); err == nil {
				return &env, nil
			}
		}
	}

	var env models.ClientEnvironment
	result := s.db.Where("client_id = ?", clientID).First(&env)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEnvNotFound
		}
		return nil, result.Error
	}

	if database.CacheEnabled() {
		if data, err := json.Marshal(&env); err == nil {
			if err := database.SetCache(ctx, envCacheKey(clientID), data, envCacheTTL); err != nil {
				logging.Errorf("Failed to cache env data for client_id=%s: %v", clientID, err)
			}
		}
	}

	return &env, nil
}

// List returns all registered client environments
func (s *EnvService) List() ([]*models.ClientEnvironment, error) {
	var envs []*models.ClientEnvironment
	if result := s.db.Find(&envs); result.Error != nil {
		return nil, result.Error
	}
	return envs, nil
}

// Create registers a new client environment; the client id must be unused
func (s *EnvService) Create(env *models.ClientEnvironment) error {
	var existing models.ClientEnvironment
	result := s.db.Where("client_id = ?", env.ClientID).First(&existing)
	if result.Error == nil {
		return fmt.Errorf("%w: client_id=%s", ErrEnvExists, env.ClientID)
	}

	if err := s.db.Create(env).Error; err != nil {
		return fmt.Errorf("failed to create client environment: %w", err)
	}

	logging.Infof("Client environment created: client_id=%s", env.ClientID)
	return nil
}

// Update applies a partial update; the client id itself is immutable
func (s *EnvService) Update(clientID string, updates map[string]interface{}) (*models.ClientEnvironment, error) {
	delete(updates, "client_id")

	if len(updates) > 0 {
		result := s.db.Model(&models.ClientEnvironment{}).Where("client_id = ?", clientID).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update client environment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrEnvNotFound
		}

		s.invalidate(clientID)
		logging.Infof("Client environment updated: client_id=%s", clientID)
	}

	var env models.ClientEnvironment
	if err := s.db.Where("client_id = ?", clientID).First(&env).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnvNotFound
		}
		return nil, err
	}
	return &env, nil
}

// Delete removes the environment data for a client id
func (s *EnvService) Delete(clientID string) error {
	result := s.db.Where("client_id = ?", clientID).Delete(&models.ClientEnvironment{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete client environment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEnvNotFound
	}

	s.invalidate(clientID)
	logging.Infof("Client environment deleted: client_id=%s", clientID)
	return nil
}

func (s *EnvService) invalidate(clientID string) {
	if !database.CacheEnabled() {
		return
	}
	if err := database.DeleteCache(context.Background(), envCacheKey(clientID)); err != nil {
		logging.Errorf("Failed to invalidate env cache for client_id=%s: %v", clientID, err)
	}
}
