package content

import (
	"math/rand/v2"
	"sync"

	"github.com/tup-eyegrade/eyegrade-api/models"
)

// Select returns min(k, len(pool)) elements of pool in random order without repeating a position.
// pool is not modified. A nil rng uses the package-level source.
func Select[T any](pool []T, k int, rng *rand.Rand) []T {
	if k <= 0 || len(pool) == 0 {
		return []T{}
	}
	k = min(k, len(pool))

	shuffled := make([]T, len(pool))
	copy(shuffled, pool)

	// partial Fisher-Yates: only the first k slots are settled
	for i := 0; i < k; i++ {
		j := i + intN(rng, len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// Deck draws random samples for the HTTP handlers. *rand.Rand is not safe for
// concurrent use, so a seeded Deck guards it.
type Deck struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDeck returns a Deck drawing from rng, or from the global source when rng is nil.
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{rng: rng}
}

func (d *Deck) DrawFlashcards() []models.Flashcard {
	return drawLocked(d, flashcardPool[:], FlashcardsPerDraw)
}

func (d *Deck) DrawQuestions() []models.Question {
	return drawLocked(d, questionPool[:], QuestionsPerDraw)
}

func drawLocked[T any](d *Deck, pool []T, k int) []T {
	if d.rng == nil {
		return Select(pool, k, nil)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return Select(pool, k, d.rng)
}
