package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/askrepo/internal/models"
)

func ptr[T any](v T) *T { return &v }

// acmeCorpus is one repository and one contributor who fixed a crash in it.
func acmeCorpus() models.Corpus {
	return models.Corpus{
		Repositories: []models.Repository{
			{ID: ptr[int64](1), Name: ptr("Acme"), URL: ptr("u"), Summary: ptr("s")},
		},
		Contributors: []models.Contributor{
			{
				ID: ptr[int64](7), Username: ptr("bob"), URL: ptr("u2"), Summary: ptr("sum"),
				Works: []models.Work{
					{
						Repository: ptr[int64](1),
						Summary:    ptr("fixed bugs"),
						Issues:     []models.Issue{},
						Commits:    []models.Commit{{Summary: ptr("fix crash")}},
					},
				},
			},
		},
	}
}

const acmeContext = "## Repositories\n\n### Repository: Acme (ID: 1)\n**URL:** u\n**Summary:**\ns\n\n\n----------\n\n" +
	"## Contributors\n\n### Contributor: bob (ID: 7)\n**URL:** u2\n**Overall Summary:**\nsum\n\n" +
	"**Contributions by Repository:**\n- **Repository:** Acme\n  - **Work Summary:** fixed bugs\n" +
	"    - Relevant Commits:\n      - fix crash\n\n\n---\n"

func TestRenderCorpus_Golden(t *testing.T) {
	assert.Equal(t, acmeContext, RenderCorpus(acmeCorpus()))
}

func TestRenderCorpus_EmptyCorpusSentinels(t *testing.T) {
	out := RenderCorpus(models.Corpus{Repositories: []models.Repository{}, Contributors: []models.Contributor{}})
	lower := strings.ToLower(out)

	assert.Contains(t, lower, "no repository data available")
	assert.Contains(t, lower, "no contributor data available")
	assert.NotContains(t, out, "### Repository:")
	assert.NotContains(t, out, "### Contributor:")

	// A zero-value corpus renders the same way.
	assert.Equal(t, out, RenderCorpus(models.Corpus{}))
}

func TestRenderCorpus_PlaceholdersEverywhere(t *testing.T) {
	corpus := models.Corpus{
		Repositories: []models.Repository{{}},
		Contributors: []models.Contributor{
			{
				Works: []models.Work{
					{
						Issues:  []models.Issue{{}},
						Commits: []models.Commit{{Summary: ptr("")}},
					},
				},
			},
			{ID: ptr[int64](3), Username: ptr("carol")},
		},
	}

	var out string
	require.NotPanics(t, func() { out = RenderCorpus(corpus) })

	assert.Contains(t, out, "### Repository: N/A (ID: N/A)")
	assert.Contains(t, out, "**URL:** N/A")
	assert.Contains(t, out, "**Summary:**\nNo summary provided.\n")
	assert.Contains(t, out, "### Contributor: N/A (ID: N/A)")
	assert.Contains(t, out, "**Overall Summary:**\nNo summary provided.\n")
	assert.Contains(t, out, "- **Repository:** Unknown Repo (ID: N/A)")
	assert.Contains(t, out, "  - **Work Summary:** No summary provided.")
	assert.Contains(t, out, "    - Relevant Issues:\n      - N/A")
	assert.Contains(t, out, "    - Relevant Commits:\n      - N/A")
	assert.Contains(t, out, "### Contributor: carol (ID: 3)")
	assert.Contains(t, out, "No specific repository contributions listed.")
}

func TestRenderCorpus_UnknownRepositoryID(t *testing.T) {
	corpus := acmeCorpus()
	corpus.Contributors[0].Works = append(corpus.Contributors[0].Works, models.Work{Repository: ptr[int64](42)})

	out := RenderCorpus(corpus)

	assert.Contains(t, out, "- **Repository:** Acme")
	assert.Contains(t, out, "Unknown Repo (ID: 42)")
}

func TestRenderCorpus_DuplicateIDsLastWriteWins(t *testing.T) {
	corpus := acmeCorpus()
	corpus.Repositories = append(corpus.Repositories,
		models.Repository{ID: ptr[int64](1), Name: ptr("Acme Fork")})

	out := RenderCorpus(corpus)

	assert.Contains(t, out, "- **Repository:** Acme Fork")
	assert.Equal(t, 2, strings.Count(out, "(ID: 1)"))
}

func TestRenderCorpus_KeepsCorpusOrder(t *testing.T) {
	corpus := models.Corpus{
		Repositories: []models.Repository{
			{ID: ptr[int64](9), Name: ptr("zeta")},
			{ID: ptr[int64](2), Name: ptr("alpha")},
		},
	}

	out := RenderCorpus(corpus)

	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
}

func TestRenderCorpus_IssuesBeforeCommits(t *testing.T) {
	corpus := acmeCorpus()
	corpus.Contributors[0].Works[0].Issues = []models.Issue{{Summary: ptr("crash on start")}}

	out := RenderCorpus(corpus)

	assert.Contains(t, out, "    - Relevant Issues:\n      - crash on start\n    - Relevant Commits:\n      - fix crash")
}
