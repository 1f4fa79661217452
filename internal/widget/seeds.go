package widget

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/samber/lo"
)

// DefaultSeeds are the example phrases shown when the widget opens without a link word.
var DefaultSeeds = []string{
	"вечность",
	"енот-полоскун",
	"ехал Грека через реку",
	"мама мыла раму",
	"игра в слова",
}

// SeedList is the JSON structure of a seeds file.
type SeedList struct {
	Seeds []string `json:"seeds"`
}

// LoadSeeds reads a seeds file, dropping phrases too short to be submitted.
func LoadSeeds(path string, minLength int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sl SeedList
	if err := json.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	seeds := lo.Filter(sl.Seeds, func(s string, _ int) bool {
		return !TooShort(s, minLength)
	})
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%s: no usable seeds", path)
	}
	return seeds, nil
}

// randomIndex returns a uniform index in [0, n).
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
