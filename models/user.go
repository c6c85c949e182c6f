package models

import "time"

// User is stored and returned as-is, password included. This backend is a
// development stand-in - credentials are compared in plaintext by the client
// and no hashing is done here.
type User struct {
	ID        string     `gorm:"primaryKey;type:varchar(40)" json:"id"`
	Email     string     `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	Password  string     `gorm:"type:varchar(128)" json:"password"`
	FullName  string     `gorm:"type:varchar(100)" json:"fullName"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
