package models

type TeamMember struct {
	BaseModel
	Name   string `json:"name" gorm:"type:varchar(255);not null"`
	TeamID string `json:"teamID" gorm:"type:varchar(32);not null;index"`
}
