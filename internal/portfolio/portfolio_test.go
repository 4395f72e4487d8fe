package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProjects = []Project{
	{Title: "a", Categories: []string{"CLI", "audio"}},
	{Title: "b", Categories: []string{"web"}},
	{Title: "c", Categories: []string{"cli"}},
	{Title: "d"},
}

func titles(ps []Project) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestDefaultProfileIsValid(t *testing.T) {
	p := Default()
	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Taglines)
	assert.NotEmpty(t, p.Projects)
	assert.NotEmpty(t, p.Skills)
	assert.NotEmpty(t, p.Stats)
}

func TestFilterNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, Filter(testProjects, "games"))
	assert.NotNil(t, Filter(nil, All))
}

func TestValidateRejectsSkillLevelOutOfRange(t *testing.T) {
	p := Profile{Name: "Ada", Skills: []Skill{{Name: "Go", Level: 120}}}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills[0]")
}

func TestCategoriesAreDistinctInFirstSeenOrder(t *testing.T) {
	got := Categories(testProjects)
	if diff := cmp.Diff([]string{"all", "cli", "audio", "web"}, got); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	cases := []struct {
		category string
		want     []string
	}{
		{"", []string{"a", "b", "c", "d"}},
		{"all", []string{"a", "b", "c", "d"}},
		{"ALL", []string{"a", "b", "c", "d"}},
		{"cli", []string{"a", "c"}},
		{" Web ", []string{"b"}},
		{"games", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, titles(Filter(testProjects, tc.category))); diff != "" {
				t.Fatalf("filter %q mismatch (-want +got):\n%s", tc.category, diff)
			}
		})
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Ada\nprojects:\n  - title: engine\n    categories: [math]\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	require.Len(t, p.Projects, 1)
	assert.True(t, p.Projects[0].HasCategory("MATH"))
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - summary: untitled\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "projects[0]: title is required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
