// Package mongo persists the gateway's durable ledger of guest-booking link
// jobs. Unlike the Redis session state, link jobs must survive restarts, so
// they get a real database.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threekst/storefront-gateway/internal/infrastructure/config"
)

const connectTimeout = 10 * time.Second

// Connect establishes a MongoDB connection from the gateway configuration,
// verifies it with a ping, and returns the selected database plus a
// disconnect function for shutdown.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, func(context.Context) error, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(cfg.Database), client.Disconnect, nil
}
