package domain

import "time"

// RoleName identifies one of the fixed user categories.
type RoleName string

const (
	RoleSuperuser RoleName = "superuser"
	RoleAdmin     RoleName = "admin"
	RoleStaff     RoleName = "staff"
	RoleClient    RoleName = "client"
	RoleAgent     RoleName = "agent"
	RoleCompany   RoleName = "company"
)

// Role is immutable reference data; a user holds exactly one role.
type Role struct {
	ID          string
	Name        RoleName
	Description string
}

// User is the domain model for registered accounts. The password is only ever
// held as a bcrypt hash; the reset ticket is only ever held as a sha256 digest.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	RoleID            string
	Verified          bool
	LastLogin         *time.Time
	ResetTokenDigest  *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName joins first and last name for mail templates.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
