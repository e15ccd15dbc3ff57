package service

import (
	"time"

	"pawmatch/internal/models"
)

const (
	sadAfter    = 30 * 24 * time.Hour
	sleepyAfter = 15 * 24 * time.Hour
)

// DeriveMood returns the mood a pet should present based on how long it
// has waited for adoption. Long waits override the stored mood; shorter
// waits leave it untouched. Records without a creation timestamp (not yet
// persisted) also keep their stored mood.
func DeriveMood(pet *models.Pet, now time.Time) models.Mood {
	if pet.CreatedAt.IsZero() {
		return pet.Mood
	}
	waiting := now.Sub(pet.CreatedAt)
	if waiting > sadAfter && !pet.IsAdopted {
		return models.MoodSad
	}
	if waiting > sleepyAfter {
		return models.MoodSleepy
	}
	return pet.Mood
}
