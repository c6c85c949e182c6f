package models

// Session identifies the logged-in user by email. The client keeps at most
// one row in this collection - login and register clear it before inserting,
// logout just clears it.
type Session struct {
	ID    string `gorm:"primaryKey;type:varchar(40)" json:"id"`
	Email string `gorm:"type:varchar(150);index" json:"email"`
}
