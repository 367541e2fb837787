// internal/words/words.go
//
// Secret word list used by the host's /random command.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise fall back to the list embedded in assets/words.txt.
//
// Every entry is passed through Normalize and kept only if Valid, so the
// list can contain stray capitals or punctuation without harm.
// Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/hangman-bot/assets"
)

var (
	initOnce   sync.Once
	secrets    []string
	initialErr error
)

// Init loads the secret word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var raw []string
		var err error
		if path := os.Getenv("WORDS_FILE"); path != "" {
			raw, err = readWordFile(path)
		} else {
			raw, err = assets.WordList()
		}
		if err != nil {
			initialErr = err
			return
		}
		secrets = normalizeList(raw)
		if len(secrets) == 0 {
			initialErr = errors.New("words: secret list is empty")
		}
	})
	return initialErr
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalizeList drops duplicates and entries that do not survive Normalize.
func normalizeList(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		w := Normalize(line)
		if !Valid(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// RandomWord returns a cryptographically random entry of the secret list.
// If the list is not loaded or empty it falls back to "виселица".
func RandomWord() string {
	if len(secrets) == 0 {
		return "виселица"
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(secrets))))
	if err != nil {
		return secrets[0]
	}
	return secrets[n.Int64()]
}

// Count returns the number of loaded secret words.
func Count() int { return len(secrets) }
