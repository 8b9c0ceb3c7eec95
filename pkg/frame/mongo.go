package frame

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/roadmap/pkg/errors"
)

// MongoStore keeps frames as documents keyed by name.
type MongoStore struct {
	coll  *mongo.Collection
	owned *mongo.Client
}

type frameDoc struct {
	Name      string    `bson:"_id"`
	Frame     Frame     `bson:"frame"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore uses coll for storage. The caller keeps ownership of the
// client behind it.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// ConnectMongoStore connects to uri and stores frames in db.collection.
// The returned store owns the client and disconnects it on Close.
func ConnectMongoStore(ctx context.Context, uri, db, collection string) (*MongoStore, error) {
	if err := errors.ValidateURL(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "ping mongo")
	}
	s := NewMongoStore(client.Database(db).Collection(collection))
	s.owned = client
	return s, nil
}

// Save upserts the named frame.
func (s *MongoStore) Save(ctx context.Context, name string, f Frame) error {
	if err := errors.ValidateFrameName(name); err != nil {
		return err
	}
	doc := frameDoc{Name: name, Frame: f, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save frame %q: %w", name, err)
	}
	return nil
}

// Load fetches the named frame.
func (s *MongoStore) Load(ctx context.Context, name string) (Frame, error) {
	if err := errors.ValidateFrameName(name); err != nil {
		return Frame{}, err
	}
	var doc frameDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Frame{}, errors.New(errors.ErrCodeFrameNotFound, "frame %q not found", name)
	}
	if err != nil {
		return Frame{}, fmt.Errorf("load frame %q: %w", name, err)
	}
	return doc.Frame, nil
}

// List returns the stored names in ascending order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

// Close disconnects the client if the store owns it.
func (s *MongoStore) Close() error {
	if s.owned == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.owned.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
