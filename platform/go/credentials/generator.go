// Package credentials produces the usernames and passwords used to seed a hosted
// site's system user, database and application admin account.
package credentials

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	petname "github.com/dustinkirkland/golang-petname"
)

// ErrInvalidParameter is returned when a generation request cannot be satisfied.
var ErrInvalidParameter = errors.New("invalid parameter")

// MinPasswordLength is the shortest password GeneratePassword accepts.
const MinPasswordLength = 8

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	digits       = "0123456789"
	// Symbols is the restricted set that survives shell, SQL and config-file quoting.
	Symbols = "!@#$&*-_+"
)

const letters = upperLetters + lowerLetters
const passwordAlphabet = upperLetters + lowerLetters + digits + Symbols

// maxUsernameAttempts bounds the retry loop in GenerateUsername.
const maxUsernameAttempts = 32

// Generator is stateless and safe for concurrent use.
type Generator struct {
	// words returns a space separated phrase of n words; overridable in tests.
	words func(n int) string
	// name returns a single name fragment; overridable in tests.
	name func() string
}

// NewGenerator returns a Generator backed by the petname word lists.
func NewGenerator() *Generator {
	return &Generator{
		words: func(n int) string { return petname.Generate(n, " ") },
		name:  petname.Name,
	}
}

// GenerateUsername builds an alphanumeric username of at most maxLength characters.
// The prefix is prepended before filtering so it is subject to the same rules.
func (g *Generator) GenerateUsername(maxLength int, prefix string) (string, error) {
	if maxLength < 1 {
		return "", fmt.Errorf("%w: username max length must be at least 1", ErrInvalidParameter)
	}

	wordCount := (maxLength + 2) / 5
	if wordCount < 1 {
		wordCount = 1
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := prefix + titleCase(g.name()) + titleWords(g.words(wordCount))
		candidate = alphanumericOnly(candidate)
		if len(candidate) > maxLength {
			candidate = candidate[:maxLength]
		}
		if candidate != "" {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("generate username: no alphanumeric candidate after %d attempts", maxUsernameAttempts)
}

// GeneratePassword returns a password of exactly length characters. The first
// character is always a letter; at least one digit and one symbol from Symbols
// appear somewhere after it, and everything after the first character is shuffled.
func (g *Generator) GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("%w: password length must be at least %d characters", ErrInvalidParameter, MinPasswordLength)
	}

	out := make([]byte, 0, length)

	first, err := pick(letters)
	if err != nil {
		return "", err
	}
	out = append(out, first)

	for _, set := range []string{digits, Symbols} {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	for len(out) < length {
		c, err := pick(passwordAlphabet)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := shuffle(out[1:]); err != nil {
		return "", err
	}

	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := randInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[n], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func randInt(upper int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(upper)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(n.Int64()), nil
}

func alphanumericOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func titleWords(phrase string) string {
	fields := strings.Fields(phrase)
	for i, f := range fields {
		fields[i] = titleCase(f)
	}
	return strings.Join(fields, "")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
