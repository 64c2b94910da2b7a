package services

import (
	"errors"
	"strings"
	"webshop-partner-server/internal/database"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/pkg/logging"

	"gorm.io/gorm"
)

// ErrDuplicatePurchase indicates that a notification with the same
// purchase id was already recorded. Duplicate delivery is expected and is
// reported to OneStore as success.
var ErrDuplicatePurchase = errors.New("purchase already recorded")

// NotificationService persists PNS notifications and triggers the consume
// flow for completed purchases
type NotificationService struct {
	db       *gorm.DB
	consumer PurchaseConsumer
}

// NewNotificationService creates a new notification service
func NewNotificationService(consumer PurchaseConsumer) *NotificationService {
	return &NotificationService{
		db:       database.GetDB(),
		consumer: consumer,
	}
}

// AlreadyProcessed reports whether a notification with this purchase id
// has been recorded before
func (s *NotificationService) AlreadyProcessed(purchaseID string) (bool, error) {
	var existing models.PurchaseNotification
	result := s.db.Where("purchase_id = ?", purchaseID).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// Record inserts the notification. A uniqueness violation on purchase_id
// (two deliveries racing past AlreadyProcessed) maps to
// ErrDuplicatePurchase so the caller can normalize it to success.
func (s *NotificationService) Record(n *models.PurchaseNotification) error {
	if err := s.db.Create(n).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePurchase
		}
		return err
	}
	return nil
}

// isUniqueViolation detects unique-constraint errors across the SQLite
// and PostgreSQL drivers
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}

// HandlePurchaseState runs the post-commit side effect for a
// notification. A rejected or timed-out consume only shows up in the
// logs, but configuration and token errors are returned so the caller
// can surface an internal error.
func (s *NotificationService) HandlePurchaseState(n *models.PurchaseNotification, environment string) error {
	switch n.PurchaseState {
	case "COMPLETED":
		logging.Infof("Purchase completed: %s( %s ), price: %s %s, user: %s, server: %s",
			n.ProductName, n.PurchaseID, n.Price, n.PriceCurrencyCode, n.ServiceUserID, n.ServiceServerID)

		result, err := s.consumer.ConsumePurchase(n.ClientID, n.ProductID, n.PurchaseToken, n.DeveloperPayload, environment)
		if err != nil {
			logging.Errorf("Consume failed: purchase_id=%s, error=%v", n.PurchaseID, err)
			return err
		}
		if len(result) == 0 {
			logging.Errorf("Purchase not consumed: purchase_id=%s", n.PurchaseID)
			return nil
		}
		logging.Infof("Purchase consumed: purchase_id=%s, result=%v", n.PurchaseID, result)

	case "CANCELED":
		logging.Infof("Purchase canceled: %s( %s ), price: %s %s, user: %s, server: %s",
			n.ProductName, n.PurchaseID, n.Price, n.PriceCurrencyCode, n.ServiceUserID, n.ServiceServerID)
	}
	return nil
}
