package service

import (
	"fmt"
	"strings"

	"github.com/ahmednasr/askrepo/internal/models"
)

const (
	sectionSeparator     = "\n----------\n"
	contributorSeparator = "\n---\n"
)

// RenderCorpus turns a corpus snapshot into the context document sent to the
// model. It never fails: absent fields render as placeholders and unknown
// repository ids as "Unknown Repo (ID: <id>)". Corpus order is preserved.
func RenderCorpus(corpus models.Corpus) string {
	repoNames := make(map[models.RepositoryID]string, len(corpus.Repositories))
	for _, r := range corpus.Repositories {
		if r.ID != nil {
			repoNames[*r.ID] = models.RepositoryFields(r).Name
		}
	}

	var parts []string

	parts = append(parts, "## Repositories\n")
	if len(corpus.Repositories) == 0 {
		parts = append(parts, "No repository data available.\n")
	}
	for _, r := range corpus.Repositories {
		v := models.RepositoryFields(r)
		parts = append(parts,
			fmt.Sprintf("### Repository: %s (ID: %s)", v.Name, v.ID),
			fmt.Sprintf("**URL:** %s", v.URL),
			fmt.Sprintf("**Summary:**\n%s\n", v.Summary),
		)
	}

	parts = append(parts, sectionSeparator)

	parts = append(parts, "## Contributors\n")
	if len(corpus.Contributors) == 0 {
		parts = append(parts, "No contributor data available.\n")
	}
	for _, c := range corpus.Contributors {
		parts = appendContributor(parts, c, repoNames)
	}

	return strings.Join(parts, "\n")
}

func appendContributor(parts []string, c models.Contributor, repoNames map[models.RepositoryID]string) []string {
	v := models.ContributorFields(c)
	parts = append(parts,
		fmt.Sprintf("### Contributor: %s (ID: %s)", v.Username, v.ID),
		fmt.Sprintf("**URL:** %s", v.URL),
		fmt.Sprintf("**Overall Summary:**\n%s\n", v.Summary),
	)

	if len(c.Works) == 0 {
		parts = append(parts, "No specific repository contributions listed.\n")
		return append(parts, contributorSeparator)
	}

	parts = append(parts, "**Contributions by Repository:**")
	for _, w := range c.Works {
		wv := models.WorkFields(w)
		parts = append(parts,
			fmt.Sprintf("- **Repository:** %s", repositoryName(w, repoNames)),
			fmt.Sprintf("  - **Work Summary:** %s", wv.Summary),
		)
		if len(w.Issues) > 0 {
			parts = append(parts, "    - Relevant Issues:")
			for _, issue := range w.Issues {
				parts = append(parts, "      - "+models.IssueSummary(issue))
			}
		}
		if len(w.Commits) > 0 {
			parts = append(parts, "    - Relevant Commits:")
			for _, commit := range w.Commits {
				parts = append(parts, "      - "+models.CommitSummary(commit))
			}
		}
	}
	parts = append(parts, "")
	return append(parts, contributorSeparator)
}

func repositoryName(w models.Work, repoNames map[models.RepositoryID]string) string {
	if w.Repository != nil {
		if name, ok := repoNames[*w.Repository]; ok {
			return name
		}
	}
	return fmt.Sprintf("Unknown Repo (ID: %s)", models.WorkFields(w).RepositoryID)
}
