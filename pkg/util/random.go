package util

import (
	"math/rand"
)

// PickRandom returns a random element from the given slice.
// The slice must be non-empty.
func PickRandom[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

// GenerateRandomNumber generates a random number between min and max (inclusive)
func GenerateRandomNumber(min, max int) int {
	return min + rand.Intn(max-min+1)
}
