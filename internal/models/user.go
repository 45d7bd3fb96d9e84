package models

import "database/sql"

// User is a row of the users table. Optional profile columns are nullable.
type User struct {
	UserID     string         `db:"user_id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	Mobile     sql.NullString `db:"mobile"`
	Address    sql.NullString `db:"address"`
	ProfilePic sql.NullString `db:"profile_pic"`
	Role       string         `db:"role"`
	AuditFields
}
