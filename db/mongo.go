package db

import (
	"context"
	"errors"
	"time"

	"ultrarent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on the shared collections.
type MongoStore struct{}

func NewMongoStore() *MongoStore { return &MongoStore{} }

// ---------- accounts ----------

func (s *MongoStore) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	err := AccountsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoStore) ListAccounts(ctx context.Context, rank string) ([]models.Account, error) {
	filter := bson.M{}
	if rank != "" {
		filter["rank"] = rank
	}
	cur, err := AccountsCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var accounts []models.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *MongoStore) PutAccount(ctx context.Context, a *models.Account) error {
	_, err := AccountsCollection.ReplaceOne(ctx, bson.M{"id": a.ID}, a,
		options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) SetAvailability(ctx context.Context, id string, isBooked bool, until *time.Time, fromVersion int64) error {
	res, err := AccountsCollection.UpdateOne(ctx,
		bson.M{"id": id, "version": fromVersion},
		bson.M{
			"$set": bson.M{"isBooked": isBooked, "bookedUntil": until},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the id is gone or somebody moved the version under us.
		n, err := AccountsCollection.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (s *MongoStore) DeleteAccount(ctx context.Context, id string) error {
	_, err := AccountsCollection.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// ---------- bookings ----------

func (s *MongoStore) GetBooking(ctx context.Context, orderID string) (*models.Booking, error) {
	var b models.Booking
	err := BookingsCollection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoStore) ListBookings(ctx context.Context, status, customerID string) ([]models.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if customerID != "" {
		filter["customerId"] = customerID
	}
	cur, err := BookingsCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := BookingsCollection.InsertOne(ctx, b)
	return err
}

func (s *MongoStore) SetBookingStatus(ctx context.Context, orderID, status string) error {
	res, err := BookingsCollection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- users ----------

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := UserCollection.FindOne(ctx, bson.M{"id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) InsertUser(ctx context.Context, u *models.User) error {
	_, err := UserCollection.InsertOne(ctx, u)
	return err
}

func (s *MongoStore) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := UserCollection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"lastLogin": at}},
	)
	return err
}

// ---------- home config ----------

func (s *MongoStore) GetHomeConfig(ctx context.Context) (*models.HomeConfig, error) {
	var cfg models.HomeConfig
	err := HomeConfigCollection.FindOne(ctx, bson.M{"id": models.HomeConfigID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *MongoStore) PutHomeConfig(ctx context.Context, cfg *models.HomeConfig) error {
	cfg.ID = models.HomeConfigID
	_, err := HomeConfigCollection.ReplaceOne(ctx, bson.M{"id": models.HomeConfigID}, cfg,
		options.Replace().SetUpsert(true))
	return err
}
