package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/dashboard"
)

const (
	StudentsCollection = "students"
	StaffCollection    = "staff"
	ClassesCollection  = "classes"
)

// Store reads the school directory (students, staff, classes) kept in MongoDB.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

var _ dashboard.Directory = (*Store)(nil) // interface compliance check

// Open connects to MongoDB; the connection is established lazily by the driver.
func Open(ctx context.Context, conf core.MongoConfig) (*Store, error) {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(conf.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	return &Store{client: client, db: client.Database(conf.Database), timeout: timeout}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return errors.Wrap(s.client.Ping(ctx, readpref.Primary()), "pinging mongo")
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Wrapf(err, "counting %s", collection)
	}
	return n, nil
}

// Counts returns the number of active students, active staff members and classes.
func (s *Store) Counts(ctx context.Context) (dashboard.Counts, error) {
	var (
		c   dashboard.Counts
		err error
	)
	active := bson.M{"active": bson.M{"$ne": false}}
	if c.Students, err = s.count(ctx, StudentsCollection, active); err != nil {
		return dashboard.Counts{}, err
	}
	if c.Staff, err = s.count(ctx, StaffCollection, active); err != nil {
		return dashboard.Counts{}, err
	}
	if c.Classes, err = s.count(ctx, ClassesCollection, bson.M{}); err != nil {
		return dashboard.Counts{}, err
	}
	return c, nil
}
