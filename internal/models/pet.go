package models

import (
	"time"
)

// Species values the matching engine scores explicitly. The column itself is
// free-form so shelters can list anything; unknown species simply score zero.
const (
	SpeciesDog  = "dog"
	SpeciesCat  = "cat"
	SpeciesBird = "bird"
)

// Mood reflects how a listed pet is presented to adopters.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodPlayful Mood = "playful"
	MoodSleepy  Mood = "sleepy"
)

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodSad, MoodPlayful, MoodSleepy:
		return true
	}
	return false
}

// Pet represents an animal listed for adoption.
//
// IsAdopted is terminal: once set there is no operation that clears it, and
// AdoptedByID/AdoptionDate are populated exactly when it is set.
type Pet struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Species      string     `gorm:"not null;index" json:"species"`
	Breed        string     `json:"breed,omitempty"`
	Age          int        `json:"age"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	Mood         Mood       `gorm:"type:varchar(16);not null;default:happy" json:"mood"`
	PhotoURL     string     `json:"image_url,omitempty"`
	IsAdopted    bool       `gorm:"not null;default:false;index" json:"is_adopted"`
	AdoptionDate *time.Time `json:"adoption_date,omitempty"`
	AdoptedByID  *uint      `gorm:"index" json:"adopted_by_id,omitempty"`
	AdoptedBy    *User      `gorm:"foreignKey:AdoptedByID" json:"adopted_by,omitempty"`
	SupplierID   uint       `gorm:"not null;index" json:"supplier_id"`
	Supplier     *User      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PetPhoto records a processed upload stored in the media directory.
type PetPhoto struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Hash       string    `gorm:"uniqueIndex;not null" json:"hash"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	CreatedAt  time.Time `json:"created_at"`
}
