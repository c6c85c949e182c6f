package models

import "inviteshare/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Session{})
	db.Instance.AutoMigrate(&Invitation{})
}
