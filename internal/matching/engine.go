// Package matching implements the pet-recommendation quiz: a deterministic
// personality classification over the quiz answers followed by a fixed
// weighted scoring of adoptable pets. It performs no I/O; callers fetch the
// candidate set and hand it in.
package matching

import (
	"sort"

	"pawmatch/internal/models"
)

// PersonalityType labels the adopter profile derived from quiz answers.
type PersonalityType string

const (
	PersonalityActive      PersonalityType = "active"
	PersonalityCalm        PersonalityType = "calm"
	PersonalitySocial      PersonalityType = "social"
	PersonalityIndependent PersonalityType = "independent"
)

// Quiz answer values the classifier reacts to. Any other value (including
// an absent field) falls through the rules permissively.
const (
	LifestyleApartment = "apartment"
	HomeSizeSmall      = "small"
	LevelHigh          = "high"
	LevelLow           = "low"
	TimeLimited        = "limited"
	TimePlenty         = "plenty"
)

// QuizAnswers is the ephemeral per-request quiz input. It is consumed once
// and never persisted.
type QuizAnswers struct {
	Lifestyle        string `json:"lifestyle"`
	HomeSize         string `json:"homeSize"`
	EnergyLevel      string `json:"energyLevel"`
	SocialPreference string `json:"socialPreference"`
	TimeAvailable    string `json:"timeAvailable"`
}

// personalityWeights maps personality type and species to a compatibility
// weight. Loaded once, never mutated. Species outside the table score zero.
var personalityWeights = map[PersonalityType]map[string]float64{
	PersonalityActive:      {models.SpeciesDog: 0.9, models.SpeciesCat: 0.4, models.SpeciesBird: 0.6},
	PersonalityCalm:        {models.SpeciesDog: 0.4, models.SpeciesCat: 0.9, models.SpeciesBird: 0.7},
	PersonalitySocial:      {models.SpeciesDog: 0.8, models.SpeciesCat: 0.5, models.SpeciesBird: 0.9},
	PersonalityIndependent: {models.SpeciesDog: 0.3, models.SpeciesCat: 0.9, models.SpeciesBird: 0.5},
}

const (
	personalityScale = 50
	apartmentBonus   = 30
	limitedTimeBonus = 20
	maxMatches       = 3
)

// Classify derives the personality type from quiz answers. The rule list is
// ordered and the first match wins; anything unmatched is independent.
func Classify(q QuizAnswers) PersonalityType {
	switch {
	case q.SocialPreference == LevelHigh && q.EnergyLevel == LevelHigh:
		return PersonalityActive
	case q.SocialPreference == LevelLow && q.TimeAvailable == TimeLimited:
		return PersonalityIndependent
	case q.SocialPreference == LevelHigh && q.TimeAvailable == TimePlenty:
		return PersonalitySocial
	case q.EnergyLevel == LevelLow:
		return PersonalityCalm
	default:
		return PersonalityIndependent
	}
}

// Score computes the compatibility score of a single pet for the given
// personality and quiz answers. Unscored species contribute zero weight.
func Score(personality PersonalityType, q QuizAnswers, pet *models.Pet) float64 {
	score := personalityWeights[personality][pet.Species] * personalityScale

	if q.Lifestyle == LifestyleApartment && pet.Species != models.SpeciesDog {
		score += apartmentBonus
	}
	if q.TimeAvailable == TimeLimited && pet.Species == models.SpeciesCat {
		score += limitedTimeBonus
	}
	return score
}

// Eligible reports whether a pet belongs in the candidate set for the given
// answers: not yet adopted, and no dogs when the home is small.
func Eligible(q QuizAnswers, pet *models.Pet) bool {
	if pet.IsAdopted {
		return false
	}
	if q.HomeSize == HomeSizeSmall {
		return pet.Species == models.SpeciesCat || pet.Species == models.SpeciesBird
	}
	return true
}

// Match classifies the quiz answers and returns the up-to-three most
// compatible candidates, best first. Ties keep the relative order of the
// input slice (stable sort over the candidate iteration order).
func Match(q QuizAnswers, candidates []models.Pet) (PersonalityType, []models.Pet) {
	personality := Classify(q)

	type scored struct {
		pet   models.Pet
		score float64
	}
	eligible := make([]scored, 0, len(candidates))
	for _, pet := range candidates {
		if !Eligible(q, &pet) {
			continue
		}
		eligible = append(eligible, scored{pet: pet, score: Score(personality, q, &pet)})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].score > eligible[j].score
	})

	n := len(eligible)
	if n > maxMatches {
		n = maxMatches
	}
	matched := make([]models.Pet, 0, n)
	for _, s := range eligible[:n] {
		matched = append(matched, s.pet)
	}
	return personality, matched
}
