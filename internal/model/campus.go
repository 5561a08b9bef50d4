package model

// Campus is an organizational tenant grouping users and events. Events
// reference it by CampusID; no referential integrity is enforced.
type Campus struct {
	Model
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	LogoURL     string `gorm:"type:varchar(255)" json:"logoUrl"`
	BannerURL   string `gorm:"type:varchar(255)" json:"bannerUrl"`
	MemberCount int    `gorm:"default:0" json:"memberCount"`
}
