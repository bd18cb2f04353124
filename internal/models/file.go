package models

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeVideo FileType = "mp4"
	FileTypeImage FileType = "img"
)

// File is a single stored document: either a blob uploaded to the object
// bucket or a link to an externally hosted Google Drive resource.
type File struct {
	BaseModel
	FileURL          string     `json:"fileURL" gorm:"type:text;not null"`
	DisplayName      string     `json:"displayName" gorm:"type:varchar(255);not null"`
	FileType         FileType   `json:"fileType" gorm:"type:varchar(10);not null"`
	FolderID         *string    `json:"folderID,omitempty" gorm:"type:varchar(32);index"`
	SubfolderID      *uuid.UUID `json:"subfolderID,omitempty" gorm:"type:uuid;index"`
	UploadedAt       time.Time  `json:"uploadedAt" gorm:"not null;default:(NOW());index"`
	IsDriveLink      bool       `json:"isDriveLink" gorm:"not null;default:false"`
	DriveFileID      *string    `json:"driveFileID,omitempty" gorm:"type:varchar(128)"`
	OriginalDriveURL *string    `json:"originalDriveURL,omitempty" gorm:"type:text"`

	Subfolder *Subfolder `json:"-" gorm:"foreignKey:SubfolderID"`
}
