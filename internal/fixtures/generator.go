// Package fixtures generates synthetic subjects and matching profile data
// for demos and load tests.
package fixtures

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/havenmetrics/pulsecheck/internal/adapters/source"
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// Archetype cases cycled across generated subjects.
const (
	caseThriving = iota
	caseSteady
	caseDeclining
	caseStruggling
	caseConcerning
	archetypeCount
)

// Caption pools per archetype, roughly ordered newest-first when sliced.
var (
	thrivingCaptions = []string{
		"So happy with how this year is going, feeling grateful every day.",
		"Best week ever, we win again and I love this team.",
		"Beautiful morning run, life is good.",
	}
	steadyCaptions = []string{
		"Another week, another training session.",
		"Homework done, game night with friends.",
		"Quiet weekend, nothing special.",
	}
	decliningCaptions = []string{
		"So tired of everything lately.",
		"Another fail on the test, whatever.",
		"Did not feel like going out today.",
	}
	strugglingCaptions = []string{
		"I feel so alone and sad all the time.",
		"Everything hurts and nobody notices.",
		"I hate how hopeless this all feels.",
	}
	concerningCaptions = []string{
		"I hate everyone and I want to destroy everything.",
		"Sometimes I think about death all day.",
		"Life is terrible and I feel worthless.",
	}
)

// bioByArchetype maps archetypes to profile biographies.
var bioByArchetype = map[int]string{
	caseThriving:   "Living my best life, love my friends and family.",
	caseSteady:     "Student. Occasional gamer.",
	caseDeclining:  "Trying to get through the semester.",
	caseStruggling: "Tired of pretending everything is good.",
	caseConcerning: "Nothing matters. Death is the only certainty.",
}

// randomIndex returns a random index below n using crypto/rand.
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// Generate creates count synthetic subjects cycling through the mood
// archetypes, plus the handle-keyed profiles to seed an in-memory fetcher
// with. Handles are unique uuids; display names carry the archetype so demo
// output is readable.
func Generate(count int) ([]model.SubjectInput, map[string]source.Profile) {
	archetypeNames := map[int]string{
		caseThriving:   "thriving",
		caseSteady:     "steady",
		caseDeclining:  "declining",
		caseStruggling: "struggling",
		caseConcerning: "concerning",
	}
	captionPools := map[int][]string{
		caseThriving:   thrivingCaptions,
		caseSteady:     steadyCaptions,
		caseDeclining:  decliningCaptions,
		caseStruggling: strugglingCaptions,
		caseConcerning: concerningCaptions,
	}

	subjects := make([]model.SubjectInput, 0, count)
	profiles := make(map[string]source.Profile, count)
	now := time.Now()

	for i := 0; i < count; i++ {
		archetype := i % archetypeCount
		handle := uuid.New().String()
		pool := captionPools[archetype]

		posts := make([]model.Post, 0, len(pool))
		for j, caption := range pool {
			posts = append(posts, model.Post{
				Caption: caption,
				TS:      now.Add(-time.Duration(j) * 24 * time.Hour),
			})
		}

		profiles[handle] = source.Profile{
			Biography: bioByArchetype[archetype],
			Posts:     posts,
		}

		subjects = append(subjects, model.SubjectInput{
			DisplayName:    fmt.Sprintf("%s-%03d", archetypeNames[archetype], i),
			Handle:         handle,
			Notes:          generateNotes(archetype, now),
			PreviousGrades: gradesFor(archetype, true),
			CurrentGrades:  gradesFor(archetype, false),
		})
	}
	return subjects, profiles
}

// generateNotes returns zero or one free-form notes; roughly half the
// subjects have none so demos exercise the absent-signal path.
func generateNotes(archetype int, now time.Time) []model.Note {
	if randomIndex(2) == 0 {
		return nil
	}
	pool := map[int]string{
		caseThriving:   "Counselor note: engaged and happy in class.",
		caseSteady:     "Counselor note: steady participation.",
		caseDeclining:  "Counselor note: seems tired, misses deadlines.",
		caseStruggling: "Counselor note: withdrawn and sad this month.",
		caseConcerning: "Counselor note: talked about violence during recess.",
	}
	return []model.Note{{Text: pool[archetype], TS: now}}
}

// gradesFor builds grade snapshots whose delta direction matches the
// archetype: thriving improves, struggling and concerning decline.
func gradesFor(archetype int, previous bool) map[string]float64 {
	base := map[string]float64{"math": 0.6, "science": 0.6, "english": 0.6}
	shift := 0.0
	switch archetype {
	case caseThriving:
		shift = 0.15
	case caseDeclining:
		shift = -0.1
	case caseStruggling, caseConcerning:
		shift = -0.2
	}
	if previous {
		return base
	}
	current := make(map[string]float64, len(base))
	for key, value := range base {
		current[key] = clamp01(value + shift)
	}
	return current
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
