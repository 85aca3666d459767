package domain

// User owns credits. Only the bulk loader writes users.
type User struct {
	ID               int64  `db:"id"`
	Login            string `db:"login"`
	RegistrationDate Date   `db:"registration_date"`
}
