package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greencode/platform/internal/core/domain"
)

const auditCollection = "audit_events"

// MongoAuditRepository is the insert-only store behind the audit dispatcher.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Actor     string `bson:"actor"`
	Action    string `bson:"action"`
	Outcome   string `bson:"outcome"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		Actor:     event.Actor,
		Action:    event.Action,
		Outcome:   event.Outcome,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
