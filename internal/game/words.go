package game

import (
	"math/rand"
	"sort"
)

var defaultWords = []string{
	"apple", "banana", "cherry", "dog", "elephant", "fish", "guitar", "house", "ice cream", "jellyfish",
	"kite", "lion", "monkey", "nest", "orange", "penguin", "queen", "rabbit", "snake", "tree",
	"umbrella", "violin", "whale", "xylophone", "yacht", "zebra", "airplane", "ball", "cat", "drum",
	"egg", "flower", "grapes", "hat", "igloo", "jacket", "key", "lamp", "moon", "nose",
	"owl", "pencil", "quilt", "robot", "sun", "table", "unicorn", "vase", "watch", "x-ray",
	"yo-yo", "zipper", "ant", "bear", "car", "duck", "ear", "frog", "goat", "hand",
	"island", "juice", "kangaroo", "lemon", "mouse", "nut", "octopus", "pig", "question", "rain",
	"star", "train", "ufo", "volcano", "water", "box", "yarn", "zoo", "bed", "cow",
	"door", "fan", "glass", "horse", "ink", "jar", "king", "leaf", "map", "net",
}

// WordPool is an immutable vocabulary shared by every room. The per-room
// used-word set lives on the Room.
type WordPool struct {
	words []string
}

// NewWordPool deduplicates the given words. An empty list falls back to the
// built-in vocabulary.
func NewWordPool(words []string) *WordPool {
	if len(words) == 0 {
		words = defaultWords
	}
	seen := make(map[string]struct{}, len(words))
	list := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		list = append(list, w)
	}
	sort.Strings(list)
	return &WordPool{words: list}
}

func DefaultWordPool() *WordPool {
	return NewWordPool(nil)
}

func (wp *WordPool) Len() int {
	return len(wp.words)
}

func (wp *WordPool) Contains(word string) bool {
	i := sort.SearchStrings(wp.words, word)
	return i < len(wp.words) && wp.words[i] == word
}

// Pick draws uniformly from the pool minus exclude. When every word has been
// excluded it returns ErrPoolExhausted; the caller resets its set and retries.
func (wp *WordPool) Pick(rng *rand.Rand, exclude map[string]struct{}) (string, error) {
	candidates := make([]string, 0, len(wp.words))
	for _, w := range wp.words {
		if _, used := exclude[w]; !used {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return "", ErrPoolExhausted
	}
	return candidates[rng.Intn(len(candidates))], nil
}
