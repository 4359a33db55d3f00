package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ClanID    uint           `gorm:"not null;index" json:"clan_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Wars      Wars           `gorm:"type:jsonb;default:'[]'" json:"wars"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenamePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}
