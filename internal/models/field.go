package models

import (
	"time"
)

// Field is a rentable football pitch.
type Field struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	OwnerID        uint      `gorm:"column:owner_id;not null" json:"owner_id"`
	Owner          *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	AddressID      uint      `gorm:"column:address_id;not null" json:"-"`
	Address        *Address  `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	ContactNumber  string    `gorm:"column:contact_number;not null" json:"contact_number"`
	ContactNumber2 string    `gorm:"column:contact_number2" json:"contact_number2"`
	Description    string    `gorm:"column:description" json:"description"`
	HourlyPrice    int64     `gorm:"column:hourly_price;not null" json:"hourly_price"`
	Width          int       `gorm:"column:width;not null" json:"width"`
	Length         int       `gorm:"column:length;not null" json:"length"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Images         []File    `gorm:"many2many:field_images;" json:"images"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Distance from the caller in kilometers. Nil when the field has no
	// stored coordinate while a reference coordinate was given.
	Distance *float64 `gorm:"-" json:"distance,omitempty"`
}

// TableName specifies the table name
func (Field) TableName() string {
	return "fields"
}

// Location returns the field's stored coordinate, if any.
func (f *Field) Location() (lat, lng float64, ok bool) {
	if f.Address == nil || f.Address.Latitude == nil || f.Address.Longitude == nil {
		return 0, 0, false
	}
	return *f.Address.Latitude, *f.Address.Longitude, true
}

// Address is a geocoded location owned by a field or a user.
type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AddressLine string    `gorm:"column:address_line" json:"address_line"`
	DistrictID  uint      `gorm:"column:district_id;not null" json:"district"`
	District    *District `gorm:"foreignKey:DistrictID" json:"-"`
	Zipcode     string    `gorm:"column:zipcode" json:"zipcode"`
	Latitude    *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64  `gorm:"column:longitude" json:"longitude"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName specifies the table name
func (Address) TableName() string {
	return "addresses"
}
