package models

// GameServer is one selectable game server of a webshop product.
type GameServer struct {
	BaseModel

	GameID     string `json:"game_id" gorm:"size:50;index"`
	ServerID   string `json:"server_id" gorm:"size:50;index"`
	ServerName string `json:"server_name" gorm:"size:255;not null"`
}

// TableName specifies the table name
func (GameServer) TableName() string {
	return "game_servers"
}

// GameUser is one registered user on a game server.
type GameUser struct {
	BaseModel

	GameID   string `json:"game_id" gorm:"size:50;index"`
	UserID   string `json:"user_id" gorm:"size:50;index"`
	ServerID string `json:"server_id" gorm:"size:50;not null"`
}

// TableName specifies the table name
func (GameUser) TableName() string {
	return "game_users"
}
