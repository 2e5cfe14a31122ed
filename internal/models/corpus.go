package models

// RepositoryID is the key a Work uses to point at a Repository.
type RepositoryID = int64

// Repository is a source repository known to the corpus.
// Every field is optional: records come from an external store and may be partial.
type Repository struct {
	ID      *RepositoryID `bson:"_id,omitempty"     json:"id"      yaml:"id"`
	Name    *string       `bson:"name,omitempty"    json:"name"    yaml:"name"`
	URL     *string       `bson:"url,omitempty"     json:"url"     yaml:"url"`
	Summary *string       `bson:"summary,omitempty" json:"summary" yaml:"summary"`
}

// Contributor is a person with an overall summary and one Work per repository touched.
type Contributor struct {
	ID       *int64  `bson:"_id,omitempty"      json:"id"       yaml:"id"`
	Username *string `bson:"username,omitempty" json:"username" yaml:"username"`
	URL      *string `bson:"url,omitempty"      json:"url"      yaml:"url"`
	Summary  *string `bson:"summary,omitempty"  json:"summary"  yaml:"summary"`
	Works    []Work  `bson:"works,omitempty"    json:"works"    yaml:"works"`
}

// Work associates a contributor with one repository.
type Work struct {
	Repository *RepositoryID `bson:"repository,omitempty" json:"repository" yaml:"repository"`
	Summary    *string       `bson:"summary,omitempty"    json:"summary"    yaml:"summary"`
	Issues     []Issue       `bson:"issues,omitempty"     json:"issues"     yaml:"issues"`
	Commits    []Commit      `bson:"commits,omitempty"    json:"commits"    yaml:"commits"`
}

// Issue only carries the summary; other upstream fields are ignored.
type Issue struct {
	Summary *string `bson:"summary,omitempty" json:"summary" yaml:"summary"`
}

// Commit only carries the summary; other upstream fields are ignored.
type Commit struct {
	Summary *string `bson:"summary,omitempty" json:"summary" yaml:"summary"`
}

// Corpus is one read-only snapshot of every repository and contributor.
type Corpus struct {
	Repositories []Repository  `json:"repositories" yaml:"repositories"`
	Contributors []Contributor `json:"contributors" yaml:"contributors"`
}
