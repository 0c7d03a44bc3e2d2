package model

import "time"

// User stores shop customers and administrators. Role: "ADMIN" | "USER".
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    int    `gorm:"not null;default:0" json:"phone"`
	Nombre   string `gorm:"not null" json:"nombre"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`

	Ordenes   []Orden    `gorm:"foreignKey:UserID" json:"ordenes,omitempty"`
	Favoritos []Favorito `gorm:"foreignKey:UserID" json:"favoritos,omitempty"`
}

func (User) TableName() string { return "user" }

// Favorito marks a plant as a favorite of a user.
type Favorito struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_favorito_user_floor;not null" json:"userId"`
	FloorID       uint      `gorm:"uniqueIndex:idx_favorito_user_floor;not null" json:"floorId"`
	FechaAgregado time.Time `gorm:"autoCreateTime" json:"fechaAgregado"`

	Floor *Floor `gorm:"foreignKey:FloorID" json:"floor,omitempty"`
}

func (Favorito) TableName() string { return "favoritos" }
