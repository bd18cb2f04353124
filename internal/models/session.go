package models

type SessionRole string

const (
	SessionRoleStudent SessionRole = "student"
	SessionRoleHost    SessionRole = "host"
)

// Session is one issued identity. Rows are never deleted on logout; a client
// that drops its token simply leaves the row behind.
type Session struct {
	BaseModel
	Token string      `json:"-" gorm:"type:varchar(64);uniqueIndex;not null"`
	Role  SessionRole `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	Name  *string     `json:"name,omitempty" gorm:"type:varchar(100)"`
}

func (Session) TableName() string {
	return "user_roles"
}
