// Package model holds the GORM persistence models mirroring the database schema.
package model

// UserModel mirrors the 'utilisateurs' table. Column names follow the
// original schema: the password column stores the bcrypt hash, never the
// raw password.
type UserModel struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Login        string `gorm:"column:login;type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null"`
	Email        string `gorm:"column:email;type:varchar(255);not null"`
	FirstName    string `gorm:"column:firstname;type:varchar(100);not null"`
	LastName     string `gorm:"column:lastname;type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "utilisateurs"
}
