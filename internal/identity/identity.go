// Package identity assigns this installation a stable, anonymous device
// id of the form AdjectiveNoun_xxxx. The id travels with every history
// entry so multiple devices writing to a shared server stay tellable
// apart without any account system.
package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

var adjectives = []string{
	"Sleepy", "Happy", "Grumpy", "Speedy", "Exhausted",
	"Fluffy", "Sneezy", "Crazy", "Cool", "Wild",
	"Radioactive", "Invisible", "Neon", "Brave", "Lazy",
}

var nouns = []string{
	"Panda", "Cactus", "Badger", "Potato", "Unicorn",
	"Toaster", "Ninja", "Wizard", "Robot", "Pirate",
	"Hamster", "Baguette", "Duck", "Raptor", "Viking",
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const suffixLen = 4

// fileName is the id file kept in the application data directory.
const fileName = "device_id"

// DeviceID returns the persisted device id, generating and storing a new
// one on first use. dataDir is the application data directory.
func DeviceID(dataDir string) (string, error) {
	path := filepath.Join(dataDir, fileName)

	if raw, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	}

	id, err := generate()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("persist device id: %w", err)
	}
	return id, nil
}

func generate() (string, error) {
	adj, err := pick(len(adjectives))
	if err != nil {
		return "", err
	}
	noun, err := pick(len(nouns))
	if err != nil {
		return "", err
	}

	suffix := make([]byte, suffixLen)
	for i := range suffix {
		n, err := pick(len(suffixAlphabet))
		if err != nil {
			return "", err
		}
		suffix[i] = suffixAlphabet[n]
	}

	return fmt.Sprintf("%s%s_%s", adjectives[adj], nouns[noun], suffix), nil
}

func pick(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random source: %w", err)
	}
	return int(v.Int64()), nil
}
