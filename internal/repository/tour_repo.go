package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boardquest/internal/model"
)

// TourRepo stores the append-only chat and reaction streams of the tour
// feature, scoped per room and per location. Entries are only ever appended
// and read back by time range.
type TourRepo interface {
	AppendMessage(ctx context.Context, msg *model.TourMessage) error
	AppendReaction(ctx context.Context, reaction *model.TourReaction) error
	MessagesSince(ctx context.Context, roomCode, locationID string, since time.Time, limit int) ([]*model.TourMessage, error)
	ReactionsSince(ctx context.Context, roomCode, locationID string, since time.Time, limit int) ([]*model.TourReaction, error)
}

type tourRepo struct {
	messages  *mongo.Collection
	reactions *mongo.Collection
}

func NewTourRepo(db *mongo.Database) TourRepo {
	return &tourRepo{
		messages:  db.Collection("tour_messages"),
		reactions: db.Collection("tour_reactions"),
	}
}

func (r *tourRepo) AppendMessage(ctx context.Context, msg *model.TourMessage) error {
	_, err := r.messages.InsertOne(ctx, msg)
	return err
}

func (r *tourRepo) AppendReaction(ctx context.Context, reaction *model.TourReaction) error {
	_, err := r.reactions.InsertOne(ctx, reaction)
	return err
}

func streamFilter(roomCode, locationID string, since time.Time) bson.M {
	return bson.M{
		"roomCode":   roomCode,
		"locationId": locationID,
		"sentAt":     bson.M{"$gt": since},
	}
}

func (r *tourRepo) MessagesSince(ctx context.Context, roomCode, locationID string, since time.Time, limit int) ([]*model.TourMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.messages.Find(ctx, streamFilter(roomCode, locationID, since), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []*model.TourMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *tourRepo) ReactionsSince(ctx context.Context, roomCode, locationID string, since time.Time, limit int) ([]*model.TourReaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.reactions.Find(ctx, streamFilter(roomCode, locationID, since), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reactions []*model.TourReaction
	if err := cur.All(ctx, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}
