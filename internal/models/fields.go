package models

import "strconv"

// Placeholders rendered in place of absent fields.
const (
	NotAvailable = "N/A"
	NoSummary    = "No summary provided."
)

// RepositoryView is a Repository with every field resolved to display text.
type RepositoryView struct {
	ID      string
	Name    string
	URL     string
	Summary string
}

// ContributorView is a Contributor with every scalar field resolved to display text.
type ContributorView struct {
	ID       string
	Username string
	URL      string
	Summary  string
}

// WorkView is a Work with its summary resolved and its repository id formatted.
type WorkView struct {
	RepositoryID string
	Summary      string
}

// RepositoryFields applies the placeholder policy to a repository.
func RepositoryFields(r Repository) RepositoryView {
	return RepositoryView{
		ID:      idOr(r.ID),
		Name:    textOr(r.Name, NotAvailable),
		URL:     textOr(r.URL, NotAvailable),
		Summary: textOr(r.Summary, NoSummary),
	}
}

// ContributorFields applies the placeholder policy to a contributor.
func ContributorFields(c Contributor) ContributorView {
	return ContributorView{
		ID:       idOr(c.ID),
		Username: textOr(c.Username, NotAvailable),
		URL:      textOr(c.URL, NotAvailable),
		Summary:  textOr(c.Summary, NoSummary),
	}
}

// WorkFields applies the placeholder policy to a work entry.
func WorkFields(w Work) WorkView {
	return WorkView{
		RepositoryID: idOr(w.Repository),
		Summary:      textOr(w.Summary, NoSummary),
	}
}

// IssueSummary returns the issue summary or N/A.
func IssueSummary(i Issue) string {
	return textOr(i.Summary, NotAvailable)
}

// CommitSummary returns the commit summary or N/A.
func CommitSummary(c Commit) string {
	return textOr(c.Summary, NotAvailable)
}

// textOr treats nil and "" alike.
func textOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func idOr(id *int64) string {
	if id == nil {
		return NotAvailable
	}
	return strconv.FormatInt(*id, 10)
}
