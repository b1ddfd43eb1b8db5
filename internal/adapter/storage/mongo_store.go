package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

const (
	productsColl = "products"
	usersColl    = "users"
	ordersColl   = "orders"
	paymentsColl = "payments"
	reviewsColl  = "reviews"
)

// MongoStore implements every repository port over a single database handle
// that is shared by all requests.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique email index that upserts rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}
	return nil
}

func idFilter(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrInvalidID
	}
	return bson.M{"_id": oid}, nil
}

func hexID(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func insertResult(res *mongo.InsertOneResult) port.InsertResult {
	return port.InsertResult{Acknowledged: true, InsertedID: hexID(res.InsertedID)}
}

func updateResult(res *mongo.UpdateResult) port.UpdateResult {
	return port.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}
}

func deleteResult(res *mongo.DeleteResult) port.DeleteResult {
	return port.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (port.InsertResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return port.InsertResult{}, fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	return insertResult(res), nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) (port.DeleteResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return port.DeleteResult{}, err
	}
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return port.DeleteResult{}, fmt.Errorf("delete %s: %w", coll.Name(), err)
	}
	return deleteResult(res), nil
}

// ----- Products -----

func (s *MongoStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return findAll[domain.Product](ctx, s.db.Collection(productsColl), bson.M{})
}

func (s *MongoStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.Product](ctx, s.db.Collection(productsColl), filter)
}

func (s *MongoStore) InsertProduct(ctx context.Context, p domain.Product) (port.InsertResult, error) {
	p.ID = primitive.NilObjectID
	return insertOne(ctx, s.db.Collection(productsColl), p)
}

func (s *MongoStore) DeleteProduct(ctx context.Context, id string) (port.DeleteResult, error) {
	return deleteByID(ctx, s.db.Collection(productsColl), id)
}

// ----- Users -----

func userSet(f domain.UserFields) bson.M {
	set := bson.M{}
	for k, v := range map[string]string{
		"name":      f.Name,
		"phone":     f.Phone,
		"address":   f.Address,
		"education": f.Education,
		"linkedin":  f.LinkedIn,
		"password":  f.Password,
	} {
		if v != "" {
			set[k] = v
		}
	}
	return set
}

func (s *MongoStore) UpsertUser(ctx context.Context, email string, f domain.UserFields) (port.UpdateResult, error) {
	set := userSet(f)
	set["email"] = email
	res, err := s.db.Collection(usersColl).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return port.UpdateResult{}, fmt.Errorf("upsert user: %w", err)
	}
	return updateResult(res), nil
}

func (s *MongoStore) SetRole(ctx context.Context, email, role string) (port.UpdateResult, error) {
	res, err := s.db.Collection(usersColl).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return port.UpdateResult{}, fmt.Errorf("set role: %w", err)
	}
	return updateResult(res), nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, s.db.Collection(usersColl), bson.M{"email": email})
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	return findAll[domain.User](ctx, s.db.Collection(usersColl), bson.M{})
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) (port.DeleteResult, error) {
	return deleteByID(ctx, s.db.Collection(usersColl), id)
}

// ----- Orders -----

func (s *MongoStore) InsertOrder(ctx context.Context, o domain.Order) (port.InsertResult, error) {
	o.ID = primitive.NilObjectID
	return insertOne(ctx, s.db.Collection(ordersColl), o)
}

func (s *MongoStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.Order](ctx, s.db.Collection(ordersColl), filter)
}

func (s *MongoStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return findAll[domain.Order](ctx, s.db.Collection(ordersColl), bson.M{})
}

func (s *MongoStore) ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return findAll[domain.Order](ctx, s.db.Collection(ordersColl), bson.M{"userEmail": email})
}

func (s *MongoStore) setOrderFields(ctx context.Context, id string, set bson.M) (port.UpdateResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return port.UpdateResult{}, err
	}
	res, err := s.db.Collection(ordersColl).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return port.UpdateResult{}, fmt.Errorf("update order: %w", err)
	}
	return updateResult(res), nil
}

func (s *MongoStore) MarkShipped(ctx context.Context, id string, at time.Time) (port.UpdateResult, error) {
	return s.setOrderFields(ctx, id, bson.M{
		"status":    domain.OrderStatusShipped,
		"shippedAt": at,
	})
}

func (s *MongoStore) MarkPaid(ctx context.Context, id, transactionID string, at time.Time) (port.UpdateResult, error) {
	return s.setOrderFields(ctx, id, bson.M{
		"status":        domain.OrderStatusPaid,
		"transactionId": transactionID,
		"paidAt":        at,
	})
}

func (s *MongoStore) DeleteOwnedOrder(ctx context.Context, id, email string) (port.DeleteResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return port.DeleteResult{}, err
	}
	filter["userEmail"] = email
	res, err := s.db.Collection(ordersColl).DeleteOne(ctx, filter)
	if err != nil {
		return port.DeleteResult{}, fmt.Errorf("delete order: %w", err)
	}
	return deleteResult(res), nil
}

func (s *MongoStore) DeleteOrder(ctx context.Context, id string) (port.DeleteResult, error) {
	return deleteByID(ctx, s.db.Collection(ordersColl), id)
}

// ----- Payments -----

func (s *MongoStore) InsertPayment(ctx context.Context, p domain.Payment) (port.InsertResult, error) {
	p.ID = primitive.NilObjectID
	return insertOne(ctx, s.db.Collection(paymentsColl), p)
}

// ----- Reviews -----

func (s *MongoStore) InsertReview(ctx context.Context, r domain.Review) (port.InsertResult, error) {
	r.ID = primitive.NilObjectID
	return insertOne(ctx, s.db.Collection(reviewsColl), r)
}

func (s *MongoStore) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return findAll[domain.Review](ctx, s.db.Collection(reviewsColl), bson.M{})
}
