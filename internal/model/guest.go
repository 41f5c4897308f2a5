package model

import "time"

// AttendanceStatus is a guest's answer to the invitation.
type AttendanceStatus int

const (
	AttendanceUndefined AttendanceStatus = iota
	AttendanceRegistered
	AttendanceExcused
)

// FoodOption is the main course preference.
type FoodOption int

const (
	FoodOptionUndefined FoodOption = iota
	FoodOptionVegetarian
	FoodOptionOmnivore
)

// Valid reports whether the ordinal is one of the known options.
func (f FoodOption) Valid() bool {
	return f >= FoodOptionUndefined && f <= FoodOptionOmnivore
}

// DessertOption is the dessert preference.
type DessertOption int

const (
	DessertOptionUndefined DessertOption = iota
	DessertOptionCake
	DessertOptionFruit
)

// Valid reports whether the ordinal is one of the known options.
func (d DessertOption) Valid() bool {
	return d >= DessertOptionUndefined && d <= DessertOptionFruit
}

// Guest is one invited person belonging to exactly one User.
type Guest struct {
	ID                         uint             `json:"id" gorm:"primaryKey"`
	UserID                     uint             `json:"-" gorm:"not null;index"`
	FirstName                  string           `json:"first_name" gorm:"size:255;not null"`
	LastName                   string           `json:"last_name" gorm:"size:255;not null"`
	AttendanceStatus           AttendanceStatus `json:"attendance_status" gorm:"not null;default:0"`
	FoodOption                 FoodOption       `json:"food_option" gorm:"not null;default:0"`
	DessertOption              DessertOption    `json:"dessert_option" gorm:"not null;default:0"`
	Allergies                  string           `json:"allergies" gorm:"type:text"`
	FavoriteFairyTaleCharacter string           `json:"favorite_fairy_tale_character" gorm:"size:255"`
	FavoriteTool               string           `json:"favorite_tool" gorm:"size:255"`
	CreatedAt                  time.Time        `json:"created_at"`
	UpdatedAt                  time.Time        `json:"updated_at"`

	// Relations
	User  *User  `json:"-" gorm:"foreignKey:UserID"`
	Roles []Role `json:"roles,omitempty" gorm:"many2many:guest_roles;"`
}

// Joins reports whether the guest counts as attending.
// Guests who never answered are treated as attending until they are excused.
func (g *Guest) Joins() bool {
	return g.AttendanceStatus != AttendanceExcused
}

// HasAnyRole reports whether the guest holds one of the given roles.
func (g *Guest) HasAnyRole(names ...RoleName) bool {
	for _, r := range g.Roles {
		for _, n := range names {
			if r.Name == n {
				return true
			}
		}
	}
	return false
}

// RoleNames returns the guest's role ordinals.
func (g *Guest) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(g.Roles))
	for _, r := range g.Roles {
		names = append(names, r.Name)
	}
	return names
}
