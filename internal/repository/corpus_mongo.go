package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmednasr/askrepo/internal/models"
)

// CorpusMongo reads corpus snapshots from two collections.
//
// Expected schema:
//
//	repositories
//	  { _id: int, name, url, summary }
//
//	contributors
//	  { _id: int, username, url, summary,
//	    works: [ { repository: int, summary, issues: [{summary}], commits: [{summary}] } ] }
type CorpusMongo struct {
	repoCol        *mongo.Collection
	contributorCol *mongo.Collection
}

// NewCorpusMongo wires the collections.
func NewCorpusMongo(db *mongo.Database) *CorpusMongo {
	return &CorpusMongo{
		repoCol:        db.Collection("repositories"),
		contributorCol: db.Collection("contributors"),
	}
}

// Snapshot reads both collections ordered by _id so repeated snapshots of
// unchanged data render identically.
func (r *CorpusMongo) Snapshot(ctx context.Context) (models.Corpus, error) {
	var corpus models.Corpus

	if err := findAll(ctx, r.repoCol, &corpus.Repositories); err != nil {
		return models.Corpus{}, fmt.Errorf("load repositories: %w", err)
	}
	if err := findAll(ctx, r.contributorCol, &corpus.Contributors); err != nil {
		return models.Corpus{}, fmt.Errorf("load contributors: %w", err)
	}
	return corpus, nil
}

func findAll(ctx context.Context, col *mongo.Collection, out any) error {
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	return cur.All(ctx, out)
}
