package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Interview struct {
	ID         string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Role       string                      `gorm:"type:varchar(255)" json:"role"`
	Type       string                      `gorm:"type:varchar(100)" json:"type"`
	Level      string                      `gorm:"type:varchar(100)" json:"level"`
	Techstack  datatypes.JSONSlice[string] `json:"techstack"`
	Questions  datatypes.JSONSlice[string] `json:"questions"`
	UserID     string                      `gorm:"type:varchar(128);index" json:"userId"`
	Finalized  bool                        `gorm:"index" json:"finalized"`
	CoverImage string                      `gorm:"type:varchar(255)" json:"coverImage"`
	CreatedAt  time.Time                   `gorm:"index" json:"createdAt"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
