// Package database holds the process-wide MongoDB connection.
//
// Connect is called once during startup, before the HTTP listener is bound.
// Everything else reads the handle through DB, which fails fast with
// ErrNotConnected until Connect has returned successfully. There is no
// reconnect logic: a dropped connection surfaces as an error on the next
// operation.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/orderdesk/delivery/pkg/logger"
)

var (
	// ErrNotConnected is returned by DB and Client before Connect succeeds.
	ErrNotConnected = errors.New("database: not connected")

	// ErrMissingURI is returned by Connect when no connection string is configured.
	ErrMissingURI = errors.New("database: MONGO_URI is not set")
)

var (
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
)

// ClientOptions returns the driver options used for every connection.
// Embedded documents decode as maps so they serialise as JSON objects.
func ClientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(25).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

// Connect opens the client, verifies it with a ping and selects the named
// database. Errors are returned, never swallowed, so startup can abort.
func Connect(ctx context.Context, uri, name string) error {
	if uri == "" {
		logger.Error("mongodb connection failed", "error", ErrMissingURI)
		return ErrMissingURI
	}

	c, err := mongo.Connect(ctx, ClientOptions(uri))
	if err != nil {
		logger.Error("mongodb connection failed", "error", err)
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		logger.Error("mongodb connection failed", "error", err)
		return fmt.Errorf("database: ping: %w", err)
	}

	Use(c, name)
	logger.Info("mongodb connected", "database", name)
	return nil
}

// Use installs an already-connected client as the process-wide handle.
func Use(c *mongo.Client, name string) {
	mu.Lock()
	client = c
	db = c.Database(name)
	mu.Unlock()
}

// DB returns the selected database or ErrNotConnected.
func DB() (*mongo.Database, error) {
	mu.RLock()
	defer mu.RUnlock()
	if db == nil {
		return nil, ErrNotConnected
	}
	return db, nil
}

// Client returns the underlying client or ErrNotConnected.
func Client() (*mongo.Client, error) {
	mu.RLock()
	defer mu.RUnlock()
	if client == nil {
		return nil, ErrNotConnected
	}
	return client, nil
}

// Disconnect closes the client and resets the handle. Safe to call when
// Connect never ran.
func Disconnect(ctx context.Context) error {
	mu.Lock()
	c := client
	client, db = nil, nil
	mu.Unlock()

	if c == nil {
		return nil
	}
	if err := c.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}

// Ping checks that the connected deployment answers.
func Ping(ctx context.Context) error {
	c, err := Client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Ping(ctx, readpref.Primary())
}
