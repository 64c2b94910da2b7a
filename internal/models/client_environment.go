package models

// ClientEnvironment holds the per-client OneStore credentials and PNS
// domains. Managed through the /onestore/env admin endpoints and read by
// the consume flow when the registry credential source is active.
type ClientEnvironment struct {
	BaseModel

	ClientID            string `json:"client_id" gorm:"size:50;uniqueIndex;not null"`
	LicenseKey          string `json:"license_key" gorm:"type:text"`
	ClientSecret        string `json:"client_secret" gorm:"type:text"`
	PNSSandboxDomain    string `json:"pns_sandbox_domain" gorm:"size:255"`
	PNSCommercialDomain string `json:"pns_commercial_domain" gorm:"size:255"`
}

// TableName specifies the table name
func (ClientEnvironment) TableName() string {
	return "onestore_env_data"
}
