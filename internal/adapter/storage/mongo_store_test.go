package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

func getMongoStore(t *testing.T) *MongoStore {
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := Connect(ctx, uri)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	db := client.Database(fmt.Sprintf("toolfacturer_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s := NewMongoStore(db)
	require.NoError(t, s.EnsureIndexes(context.Background()))
	return s
}

func TestMongoStore_UpsertUser(t *testing.T) {
	s := getMongoStore(t)
	ctx := context.Background()

	res, err := s.UpsertUser(ctx, "a@example.com", domain.UserFields{Name: "First", Phone: "111"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.UpsertedCount)

	_, err = s.UpsertUser(ctx, "a@example.com", domain.UserFields{Name: "Second"})
	require.NoError(t, err)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Second", users[0].Name)
	assert.Equal(t, "111", users[0].Phone)
}

func TestMongoStore_OrderLifecycle(t *testing.T) {
	s := getMongoStore(t)
	ctx := context.Background()

	ins, err := s.InsertOrder(ctx, domain.Order{UserEmail: "owner@example.com", ProductName: "drill", OrderQuantity: 2, CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = s.MarkPaid(ctx, ins.InsertedID, "txn_1", time.Now())
	require.NoError(t, err)
	_, err = s.MarkShipped(ctx, ins.InsertedID, time.Now())
	require.NoError(t, err)

	o, err := s.GetOrder(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, o.Status)
	assert.Equal(t, "txn_1", o.TransactionID)

	del, err := s.DeleteOwnedOrder(ctx, ins.InsertedID, "other@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, del.DeletedCount)

	del, err = s.DeleteOwnedOrder(ctx, ins.InsertedID, "owner@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = s.GetOrder(ctx, ins.InsertedID)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestMongoStore_Products(t *testing.T) {
	s := getMongoStore(t)
	ctx := context.Background()

	ins, err := s.InsertProduct(ctx, domain.Product{Name: "drill", AvailableQnt: 10, Price: 12.5})
	require.NoError(t, err)

	p, err := s.GetProduct(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "drill", p.Name)
	assert.Equal(t, 10, p.AvailableQnt)

	_, err = s.GetProduct(ctx, "bad-id")
	assert.ErrorIs(t, err, port.ErrInvalidID)

	del, err := s.DeleteProduct(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)
}
