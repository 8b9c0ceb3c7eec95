package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/errors"
)

// DefaultMongoCollection is used when the URI names no collection.
const DefaultMongoCollection = "items"

// Mongo reads items from a MongoDB collection. Documents use the record
// field names (id, type, title, startDate, ...).
type Mongo struct {
	coll  *mongo.Collection
	owned *mongo.Client
}

// NewMongo reads from coll; the caller keeps ownership of its client.
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

// ConnectMongo connects to uri, whose path names the database and optionally
// the collection: mongodb://host:27017/roadmap/items.
func ConnectMongo(ctx context.Context, uri string) (*Mongo, error) {
	if err := errors.ValidateURL(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	connURI, db, collection, err := splitMongoURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connURI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "ping mongo")
	}
	m := NewMongo(client.Database(db).Collection(collection))
	m.owned = client
	return m, nil
}

// splitMongoURI strips "/db/collection" from the URI path.
func splitMongoURI(uri string) (conn, db, collection string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid mongo uri")
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", "", "", errors.New(errors.ErrCodeInvalidInput, "mongo uri must name a database")
	}
	db, collection = parts[0], DefaultMongoCollection
	if len(parts) > 1 && parts[1] != "" {
		collection = parts[1]
	}
	u.Path = "/"
	return u.String(), db, collection, nil
}

// Name returns the namespace read from.
func (m *Mongo) Name() string {
	return "mongo:" + m.coll.Database().Name() + "." + m.coll.Name()
}

// Load returns every document in insertion order.
func (m *Mongo) Load(ctx context.Context) ([]item.Item, error) {
	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "query %s", m.Name())
	}
	var recs []item.Record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return item.Items(recs), nil
}

// Insert appends recs to the collection.
func (m *Mongo) Insert(ctx context.Context, recs []item.Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	docs := make([]any, len(recs))
	for i, r := range recs {
		docs[i] = r
	}
	res, err := m.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert items: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// Close disconnects the client if this source owns it.
func (m *Mongo) Close() error {
	if m.owned == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.owned.Disconnect(ctx)
}

var _ Source = (*Mongo)(nil)
