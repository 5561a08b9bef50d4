package model

const (
	RoleMember     = "member"
	RoleCampusLead = "campus_lead"
	RoleAdmin      = "admin"
)

type User struct {
	Model
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Role     string `gorm:"type:varchar(20);default:member;not null" json:"role"`
	CampusID *uint  `gorm:"index" json:"campusId"`
}

// RoleRank orders roles for the auth middleware. Unknown roles rank lowest.
func RoleRank(role string) int {
	switch role {
	case RoleAdmin:
		return 2
	case RoleCampusLead:
		return 1
	case RoleMember:
		return 0
	default:
		return -1
	}
}
