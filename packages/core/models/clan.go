package models

import "time"

type Clan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	OwnerID   uint      `gorm:"not null;uniqueIndex" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Clan) TableName() string {
	return "clans"
}

// ClanSummary is the public projection of a clan.
type ClanSummary struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c Clan) Summary() ClanSummary {
	return ClanSummary{Name: c.Name, Slug: c.Slug}
}

type CreateClanRequest struct {
	Name string `json:"name" binding:"required"`
}
