package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionActionRun = "action_run"

type ActionRun struct {
	client *firestore.Client
}

var _ interfaces.ActionRunRepository = (*ActionRun)(nil)

// New creates a new Firestore-based bookkeeping repository
func New(ctx context.Context, projectID, databaseID string) (*ActionRun, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &ActionRun{
		client: client,
	}, nil
}

func (r *ActionRun) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Firestore client")
	}
	return nil
}

// ToFirestoreID converts key of an action run to a Firestore-safe document ID. Colon is used as
// separator since GitHub owner and repository names cannot contain it.
func ToFirestoreID(run *model.ActionRun) (string, error) {
	if run.Owner == "" || run.Repo == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo is empty",
			goerr.V("owner", run.Owner),
			goerr.V("repo", run.Repo),
		)
	}

	if strings.Contains(run.Owner, ":") || strings.Contains(run.Repo, ":") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo contains invalid character ':'",
			goerr.V("owner", run.Owner),
			goerr.V("repo", run.Repo),
		)
	}

	return fmt.Sprintf("%s:%s:%d:%d", run.Owner, run.Repo, run.PullNumber, run.RunID), nil
}

func (r *ActionRun) PutActionRun(ctx context.Context, run *model.ActionRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	docID, err := ToFirestoreID(run)
	if err != nil {
		return err
	}

	// Create fails if the document exists, which makes the insert idempotent
	if _, err := r.client.Collection(collectionActionRun).Doc(docID).Create(ctx, run); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(types.ErrDuplicate, "action run already recorded",
				goerr.V("docID", docID),
			)
		}
		return goerr.Wrap(err, "failed to create action run",
			goerr.V("docID", docID),
		)
	}

	return nil
}

func (r *ActionRun) ListActionRuns(ctx context.Context) ([]*model.ActionRun, error) {
	iter := r.client.Collection(collectionActionRun).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	runs := []*model.ActionRun{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate action runs")
		}

		var run model.ActionRun
		if err := snap.DataTo(&run); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action run", goerr.V("docID", snap.Ref.ID))
		}
		runs = append(runs, &run)
	}

	return runs, nil
}

func (r *ActionRun) ListPullRequests(ctx context.Context, limit int) ([]*model.PullRequestEntry, error) {
	if limit <= 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "limit must be positive", goerr.V("limit", limit))
	}

	iter := r.client.Collection(collectionActionRun).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	// Documents are in created_at desc order, so first appearance of a pull request is its latest run
	seen := make(map[string]struct{})
	entries := []*model.PullRequestEntry{}
	for len(entries) < limit {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate action runs")
		}

		var run model.ActionRun
		if err := snap.DataTo(&run); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action run", goerr.V("docID", snap.Ref.ID))
		}

		entry := model.NewPullRequestEntry(run.Owner, run.Repo, run.PullNumber)
		if _, ok := seen[entry.Value]; ok {
			continue
		}
		seen[entry.Value] = struct{}{}
		entries = append(entries, entry)
	}

	return entries, nil
}
