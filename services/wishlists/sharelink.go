package wishlists

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/sethvargo/go-password/password"
)

const shareTokenAttempts = 100

// tokenExistsFunc reports whether a candidate token is already taken.
type tokenExistsFunc func(ctx context.Context, token string) (bool, error)

func randomShareWord() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(shareWords))))
	if err != nil {
		return "", fmt.Errorf("pick share word: %w", err)
	}
	return shareWords[n.Int64()], nil
}

// generateShareToken builds a pronounceable token from three dictionary
// words, retrying on collision. After too many collisions it falls back to
// appending a random digit suffix, which is effectively always unique.
func generateShareToken(ctx context.Context, exists tokenExistsFunc) (string, error) {
	var last string
	for i := 0; i < shareTokenAttempts; i++ {
		var words [3]string
		for j := range words {
			w, err := randomShareWord()
			if err != nil {
				return "", err
			}
			words[j] = w
		}
		candidate := strings.Join(words[:], "")
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		last = candidate
	}

	suffix, err := password.Generate(6, 6, 0, true, true)
	if err != nil {
		return "", fmt.Errorf("generate share token suffix: %w", err)
	}
	return last + suffix, nil
}
