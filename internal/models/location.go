package models

// Country, Region and District form a plain lookup hierarchy.
type Country struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Code string `json:"code"`
}

func (Country) TableName() string {
	return "countries"
}

type Region struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"not null" json:"name"`
	CountryID uint     `gorm:"not null" json:"country"`
	Country   *Country `gorm:"foreignKey:CountryID" json:"-"`
}

func (Region) TableName() string {
	return "regions"
}

type District struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	RegionID uint    `gorm:"not null" json:"region"`
	Region   *Region `gorm:"foreignKey:RegionID" json:"-"`
}

func (District) TableName() string {
	return "districts"
}
