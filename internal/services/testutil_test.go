package services

import (
	"fmt"
	"sync"
	"testing"
	"webshop-partner-server/internal/config"
	"webshop-partner-server/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a unique in-memory database per test so schema state
// never leaks across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.PurchaseNotification{},
		&models.ClientEnvironment{},
		&models.GameServer{},
		&models.GameUser{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// initTestConfig installs a minimal AppConfig for tests
func initTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		SandboxDomain:    "sandbox.example.com",
		CommercialDomain: "commercial.example.com",
		ClientSecrets:    map[string]string{},
		ConsumeTimeout:   2,
	}
}

// consumeCall records one ConsumePurchase invocation
type consumeCall struct {
	ClientID         string
	ProductID        string
	PurchaseToken    string
	DeveloperPayload string
	Environment      string
}

// fakeConsumer is a PurchaseConsumer double recording its calls
type fakeConsumer struct {
	mu     sync.Mutex
	calls  []consumeCall
	result map[string]interface{}
	err    error
}

func (f *fakeConsumer) ConsumePurchase(clientID, productID, purchaseToken, developerPayload, environment string) (map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, consumeCall{
		ClientID:         clientID,
		ProductID:        productID,
		PurchaseToken:    purchaseToken,
		DeveloperPayload: developerPayload,
		Environment:      environment,
	})
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return map[string]interface{}{"status": "consumed"}, nil
}

func (f *fakeConsumer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
