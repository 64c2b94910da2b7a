package models

// PurchaseNotification stores one OneStore PNS message. Rows are written
// once on first receipt and never mutated or deleted afterwards; the
// unique index on purchase_id is what makes redelivery idempotent.
type PurchaseNotification struct {
	BaseModel

	MsgVersion  string `json:"msg_version" gorm:"size:20;not null"`
	ClientID    string `json:"client_id" gorm:"size:50;index;not null"`
	ProductID   string `json:"product_id" gorm:"size:50;index;not null"`
	MessageType string `json:"message_type" gorm:"size:50;not null"`
	PurchaseID  string `json:"purchase_id" gorm:"size:100;uniqueIndex;not null"`

	DeveloperPayload   string `json:"developer_payload" gorm:"size:255"`
	PurchaseTimeMillis int64  `json:"purchase_time_millis" gorm:"not null"`
	PurchaseState      string `json:"purchase_state" gorm:"size:20;index;not null"` // COMPLETED / CANCELED
	Price              string `json:"price" gorm:"size:20;not null"`
	PriceCurrencyCode  string `json:"price_currency_code" gorm:"size:10;not null"`
	ProductName        string `json:"product_name" gorm:"size:255"`
	PaymentTypes       string `json:"payment_types" gorm:"type:text"` // JSON string
	BillingKey         string `json:"billing_key" gorm:"size:255"`
	IsTestMdn          bool   `json:"is_test_mdn" gorm:"default:false"`
	PurchaseToken      string `json:"purchase_token" gorm:"type:text;not null"`
	Environment        string `json:"environment" gorm:"size:20;not null"` // SANDBOX / COMMERCIAL
	MarketCode         string `json:"market_code" gorm:"size:20;not null"` // MKT_ONE / MKT_GLB
	Signature          string `json:"signature" gorm:"type:text;not null"`
	RawData            string `json:"raw_data" gorm:"type:text"` // original JSON payload

	ServiceUserID   string `json:"service_user_id" gorm:"size:255"`
	ServiceServerID string `json:"service_server_id" gorm:"size:255"`
}

// TableName specifies the table name
func (PurchaseNotification) TableName() string {
	return "onestore_pns_notifications"
}
