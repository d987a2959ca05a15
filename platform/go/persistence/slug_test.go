package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expectSlug  string
		expectError bool
	}{
		{
			name:       "already normalized",
			input:      "wordpress-basic",
			expectSlug: "wordpress-basic",
		},
		{
			name:       "trims whitespace and lowercases",
			input:      "  WordPress-Pro ",
			expectSlug: "wordpress-pro",
		},
		{
			name:        "empty string",
			input:       "   ",
			expectError: true,
		},
		{
			name:        "invalid characters",
			input:       "static_site",
			expectError: true,
		},
		{
			name:        "leading hyphen",
			input:       "-bad-slug",
			expectError: true,
		},
		{
			name:        "trailing hyphen",
			input:       "bad-slug-",
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			slug, err := NormalizeSlug(tt.input)
			if tt.expectError {
				var slugErr *SlugError
				require.ErrorAs(t, err, &slugErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectSlug, slug)
		})
	}
}
