package models

// Subfolder is a user-created container nested one level under a fixed team
// folder. ParentFolderID holds a team identifier, not a row reference.
type Subfolder struct {
	BaseModel
	Name           string `json:"name" gorm:"type:varchar(255);not null"`
	ParentFolderID string `json:"parentFolderID" gorm:"type:varchar(32);not null;index"`

	Files []File `json:"-" gorm:"foreignKey:SubfolderID"`
}
