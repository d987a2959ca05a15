package credentials

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestGeneratePasswordPolicy(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	for length := MinPasswordLength; length <= 64; length++ {
		for i := 0; i < 20; i++ {
			pw, err := g.GeneratePassword(length)
			require.NoError(t, err)
			require.Len(t, pw, length)
			require.Contains(t, letters, string(pw[0]), "first character must be a letter")
			require.True(t, strings.ContainsAny(pw, digits), "password %q has no digit", pw)
			require.True(t, strings.ContainsAny(pw, Symbols), "password %q has no symbol", pw)
			for _, c := range pw {
				require.Contains(t, passwordAlphabet, string(c))
			}
		}
	}
}

func TestGeneratePasswordRejectsShortLength(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	for _, length := range []int{-1, 0, 1, 7} {
		_, err := g.GeneratePassword(length)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidParameter))
	}
}

func TestGeneratePasswordShufflesTail(t *testing.T) {
	t.Parallel()

	// The mandatory digit and symbol are appended at positions 1 and 2 before the
	// shuffle; over many samples they must not stay pinned there.
	g := NewGenerator()
	pinned := 0
	const samples = 200
	for i := 0; i < samples; i++ {
		pw, err := g.GeneratePassword(32)
		require.NoError(t, err)
		if strings.ContainsRune(digits, rune(pw[1])) && strings.ContainsRune(Symbols, rune(pw[2])) {
			pinned++
		}
	}
	require.Less(t, pinned, samples/4)
}

func TestGenerateUsernameConstraints(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	for maxLength := 1; maxLength <= 40; maxLength++ {
		for i := 0; i < 10; i++ {
			name, err := g.GenerateUsername(maxLength, "")
			require.NoError(t, err)
			require.NotEmpty(t, name)
			require.LessOrEqual(t, len(name), maxLength)
			require.Regexp(t, alphanumeric, name)
		}
	}
}

func TestGenerateUsernamePrefixIsFiltered(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	name, err := g.GenerateUsername(20, "db_")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "db"))
	require.Regexp(t, alphanumeric, name)
}

func TestGenerateUsernameRetriesUntilNonEmpty(t *testing.T) {
	t.Parallel()

	calls := 0
	g := &Generator{
		name: func() string {
			calls++
			if calls < 3 {
				return "---"
			}
			return "otter"
		},
		words: func(int) string { return "" },
	}

	name, err := g.GenerateUsername(8, "")
	require.NoError(t, err)
	require.Equal(t, "Otter", name)
	require.Equal(t, 3, calls)
}

func TestGenerateUsernameGivesUpAfterBoundedAttempts(t *testing.T) {
	t.Parallel()

	g := &Generator{
		name:  func() string { return "__" },
		words: func(int) string { return "" },
	}

	_, err := g.GenerateUsername(8, "")
	require.Error(t, err)
}

func TestGenerateUsernameRejectsZeroLength(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator().GenerateUsername(0, "x")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGeneratorIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.NewBundle(DefaultBundlePolicy())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestNewBundle(t *testing.T) {
	t.Parallel()

	policy := DefaultBundlePolicy()
	b, err := NewGenerator().NewBundle(policy)
	require.NoError(t, err)

	require.Equal(t, strings.ToLower(b.SiteOwner), b.SiteOwner)
	require.LessOrEqual(t, len(b.SiteOwner), policy.SiteOwnerMaxLength)
	require.True(t, strings.HasPrefix(b.DBName, "db"))
	require.True(t, strings.HasPrefix(b.DBUsername, "u"))
	require.Len(t, b.DBPassword, policy.DBPasswordLength)
	require.Len(t, b.AdminPassword, policy.AdminPasswordLength)
	require.LessOrEqual(t, len(b.AdminUser), policy.AdminUserMaxLength)
}
