package entities

import "time"

// User represents a single record in the users table. The id is assigned by
// the database sequence and CreatedAt is set once at insert time; neither is
// ever taken from the client.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;index;check:chk_users_name,length(trim(name)) > 0" json:"name"`
	Email     string    `gorm:"size:150;not null;uniqueIndex;check:chk_users_email,email LIKE '%@%'" json:"email"`
	Phone     string    `gorm:"size:15" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (User) TableName() string { return "users" }
