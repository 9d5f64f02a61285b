package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/config"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the primary is reachable.
func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	timeout := cfg.Mongo.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		// Nested documents such as user settings decode as plain maps.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.GetLogger().Info("Connected to MongoDB",
		zap.String("database", cfg.Mongo.Database),
	)

	return &Client{client: client, db: client.Database(cfg.Mongo.Database)}, nil
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
