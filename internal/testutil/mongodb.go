//go:build integration

// Package testutil runs the MongoDB testcontainer shared by the integration suites.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// defaultMongoImage can be overridden with TEST_MONGODB_IMAGE.
const defaultMongoImage = "mongo:7.0"

// maxDBNameLen keeps generated names well below MongoDB's 64 byte limit.
const maxDBNameLen = 40

// MongoDBContainer wraps a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a dedicated MongoDB container.
// Suites that share one container per package should use SetupTestMainWithMongoDB instead.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("TEST_MONGODB_IMAGE")
	if image == "" {
		image = defaultMongoImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container %s: %w", image, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}

var shared struct {
	once      sync.Once
	mu        sync.RWMutex
	container *MongoDBContainer
	err       error
}

// GetSharedMongoDB starts the package-wide container on first use and returns it afterwards.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	shared.once.Do(func() {
		c, err := SetupMongoDB(ctx)
		shared.mu.Lock()
		shared.container, shared.err = c, err
		shared.mu.Unlock()
	})

	shared.mu.RLock()
	defer shared.mu.RUnlock()
	return shared.container, shared.err
}

// SetupTestMainWithMongoDB runs m against the shared container and terminates it afterwards:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	shared.mu.Lock()
	defer shared.mu.Unlock()
	if err := shared.container.Cleanup(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clean up shared MongoDB container")
	}
	shared.container = nil
	return code
}

// GetSharedContainerURI returns the shared container's connection string.
// It panics when called outside SetupTestMainWithMongoDB.
func GetSharedContainerURI() string {
	shared.mu.RLock()
	defer shared.mu.RUnlock()

	if shared.container == nil {
		panic("shared MongoDB container not started; call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.container.URI
}

// SanitizeDBName derives a unique database name from a test name.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		return r
	}, testName)
	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return name + "_" + uuid.NewString()[:8]
}
