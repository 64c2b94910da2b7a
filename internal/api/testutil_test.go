package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"webshop-partner-server/internal/config"
	"webshop-partner-server/internal/database"
	"webshop-partner-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires a test router against a unique in-memory database
// and swaps the consume client for a recording fake.
func setupRouter(t *testing.T) (*gin.Engine, *fakeConsumer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		Mode:             gin.TestMode,
		SandboxDomain:    "sandbox.example.com",
		CommercialDomain: "commercial.example.com",
		ClientSecrets:    map[string]string{},
		ConsumeTimeout:   2,
		ServiceName:      "webshop-partner-server",
	}

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
	database.DB = db
	database.RedisClient = nil

	r := gin.New()
	SetupRoutes(r)

	consumer := &fakeConsumer{}
	purchaseConsumer = consumer
	return r, consumer
}

// doJSON performs a JSON request against the router and decodes the body
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

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

func notificationCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	database.DB.Model(&models.PurchaseNotification{}).Count(&count)
	return count
}

func pnsPayload(purchaseID, state string) map[string]interface{} {
	return map[string]interface{}{
		"msgVersion":         "3.1.0",
		"clientId":           "WS00000026",
		"productId":          "p500",
		"messageType":        "SINGLE_PAYMENT_TRANSACTION",
		"purchaseId":         purchaseID,
		"developerPayload":   "dev-payload",
		"purchaseTimeMillis": 1700000000000,
		"purchaseState":      state,
		"price":              "5000",
		"priceCurrencyCode":  "KRW",
		"productName":        "500 Gems",
		"paymentTypeList": []map[string]interface{}{
			{"paymentMethod": "CARD", "amount": 5000},
		},
		"isTestMdn":       false,
		"purchaseToken":   "token-" + purchaseID,
		"environment":     "COMMERCIAL",
		"marketCode":      "MKT_ONE",
		"signature":       "sig",
		"serviceUserId":   "user-1",
		"serviceServerId": "server-1",
	}
}
