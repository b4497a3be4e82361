package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a row of the `users` table. The three token columns drive the
// account lifecycle: BlockedConfirmationToken authorizes activation and
// post-ban unlock, ResetToken authorizes one password reset, LoggedToken
// is the opaque value proving a live session.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Roles        []string  `gorm:"type:jsonb;serializer:json;not null" json:"roles"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Enabled      bool      `gorm:"not null;default:false" json:"enabled"`
	FailedLogin  int       `gorm:"not null;default:0" json:"failed_login"`

	Name              *string    `gorm:"type:varchar(255)" json:"name"`
	Surname           *string    `gorm:"type:varchar(255)" json:"surname"`
	PESEL             *string    `gorm:"type:varchar(15)" json:"pesel"`
	NIP               *string    `gorm:"type:varchar(25)" json:"nip"`
	Address           *string    `gorm:"type:varchar(400)" json:"address"`
	PersonDescription *string    `gorm:"type:varchar(3000)" json:"person_description"`
	Interests         *string    `gorm:"type:varchar(1000)" json:"interests"`
	Skills            *string    `gorm:"type:varchar(1000)" json:"skills"`
	Experience        *string    `gorm:"type:varchar(5000)" json:"experience"`
	BirthDate         *time.Time `gorm:"type:date" json:"birth_date"`
	Rating            *int       `json:"rating"`
	CVFilename        *string    `gorm:"column:cv_filename" json:"cv_filename"`

	RegistrationDate  time.Time  `gorm:"not null" json:"registration_date"`
	EntryUpdatingDate time.Time  `gorm:"not null" json:"entry_updating_date"`
	LoginDate         *time.Time `json:"login_date"`

	BlockedConfirmationToken *string `gorm:"type:uuid;uniqueIndex" json:"-"`
	ResetToken               *string `gorm:"type:uuid;uniqueIndex" json:"-"`
	LoggedToken              *string `gorm:"type:uuid;uniqueIndex" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// GetRoles returns the role set with the base role guaranteed, even if the
// column was never populated explicitly.
func (u *User) GetRoles() []string {
	for _, r := range u.Roles {
		if r == RoleUser {
			return u.Roles
		}
	}
	return append([]string{RoleUser}, u.Roles...)
}

// HighestRole resolves admin over user.
func (u *User) HighestRole() string {
	for _, r := range u.GetRoles() {
		if r == RoleAdmin {
			return RoleAdmin
		}
	}
	return RoleUser
}

// FullName joins name and surname for the mirror store's post title.
func (u *User) FullName() string {
	name, surname := "", ""
	if u.Name != nil {
		name = *u.Name
	}
	if u.Surname != nil {
		surname = *u.Surname
	}
	return name + " " + surname
}
