package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sssf/cats-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// InsertEvent appends a verdict to the audit_events collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, ev domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"action":    string(ev.Action),
		"actor_id":  ev.ActorID,
		"target_id": ev.TargetID,
		"allowed":   ev.Allowed,
		"at":        ev.At,
	}
	if ev.OwnerID != 0 {
		doc["owner_id"] = ev.OwnerID
	}
	if ev.Reason != "" {
		doc["reason"] = ev.Reason
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
