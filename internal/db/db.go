package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fa-emon/glamhub-server/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPingTimeout = 10 * time.Second

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	uri := BuildMongoURI(cfg)

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	client, err := mongo.Connect(pingCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// BuildMongoURI assembles the connection string from config. SRV clusters
// omit the port per the mongodb+srv scheme.
func BuildMongoURI(cfg config.Config) string {
	scheme := "mongodb"
	host := fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	if cfg.Database.SRV {
		scheme = "mongodb+srv"
		host = cfg.Database.Host
	}

	u := &url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   "/" + cfg.Database.DBName,
	}
	if cfg.Database.User != "" {
		u.User = url.UserPassword(cfg.Database.User, cfg.Database.Password)
	}

	q := u.Query()
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	u.RawQuery = q.Encode()
	return u.String()
}
