package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

const linkJobCollection = "link_jobs"

// LinkJobRepository is the durable ledger of guest-booking link jobs. Jobs
// land here only when the inline link-all call after a guest conversion
// fails; the cron reconciler drains them.
type LinkJobRepository struct {
	coll *mongo.Collection
}

func NewLinkJobRepository(db *mongo.Database) *LinkJobRepository {
	return &LinkJobRepository{coll: db.Collection(linkJobCollection)}
}

type linkJobDoc struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	UserID    string `bson:"user_id"`
	Attempts  int    `bson:"attempts"`
	Status    string `bson:"status"`
	LastError string `bson:"last_error,omitempty"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *LinkJobRepository) Enqueue(ctx context.Context, job *domain.LinkJob) error {
	doc := linkJobDoc{
		ID:        job.ID,
		Email:     job.Email,
		UserID:    job.UserID,
		Attempts:  job.Attempts,
		Status:    string(job.Status),
		LastError: job.LastError,
		CreatedAt: job.CreatedAt.Unix(),
		UpdatedAt: job.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("enqueue link job: %w", err)
	}
	return nil
}

func (r *LinkJobRepository) Pending(ctx context.Context, limit int) ([]*domain.LinkJob, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"status": string(domain.LinkJobPending)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find pending link jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.LinkJob
	for cur.Next(ctx) {
		var doc linkJobDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode link job: %w", err)
		}
		jobs = append(jobs, &domain.LinkJob{
			ID:        doc.ID,
			Email:     doc.Email,
			UserID:    doc.UserID,
			Attempts:  doc.Attempts,
			Status:    domain.LinkJobStatus(doc.Status),
			LastError: doc.LastError,
			CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
			UpdatedAt: time.Unix(doc.UpdatedAt, 0).UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate link jobs: %w", err)
	}
	return jobs, nil
}

func (r *LinkJobRepository) MarkDone(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{
		"status":     string(domain.LinkJobDone),
		"updated_at": time.Now().UTC().Unix(),
	}}
	if _, err := r.coll.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("mark link job done: %w", err)
	}
	return nil
}

func (r *LinkJobRepository) MarkAttempt(ctx context.Context, id string, attempts int, lastError string, failed bool) error {
	status := domain.LinkJobPending
	if failed {
		status = domain.LinkJobFailed
	}
	update := bson.M{"$set": bson.M{
		"attempts":   attempts,
		"status":     string(status),
		"last_error": lastError,
		"updated_at": time.Now().UTC().Unix(),
	}}
	if _, err := r.coll.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("mark link job attempt: %w", err)
	}
	return nil
}
