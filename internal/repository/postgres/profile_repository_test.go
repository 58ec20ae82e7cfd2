package postgres

import (
	"testing"

	"go-portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEntries(t *testing.T) {
	t.Run("Should store nil as empty array", func(t *testing.T) {
		out, err := encodeEntries[domain.Experience](nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", out)
	})

	t.Run("Should keep camelCase keys", func(t *testing.T) {
		out, err := encodeEntries([]domain.Project{{Title: "CLI", GitHubURL: "https://github.com/a/b"}})
		require.NoError(t, err)
		assert.Contains(t, out, `"githubUrl":"https://github.com/a/b"`)
	})
}

func TestEntriesColumn(t *testing.T) {
	p := domain.Profile{Education: []domain.Education{{Degree: "BSc"}}}

	column, payload, err := entriesColumn(p, domain.SectionEducation)
	require.NoError(t, err)
	assert.Equal(t, "education", column)
	assert.Contains(t, payload, `"degree":"BSc"`)

	column, payload, err = entriesColumn(p, domain.SectionProjects)
	require.NoError(t, err)
	assert.Equal(t, "projects", column)
	assert.Equal(t, "[]", payload)
}
