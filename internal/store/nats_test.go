package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSKeyEncoding(t *testing.T) {
	key := natsKey("a.server/with odd:name")
	assert.Regexp(t, `^[A-Za-z0-9_-]+$`, key)
}

func TestNATSContract(t *testing.T) {
	url := os.Getenv("SERVERCONF_TEST_NATS_URL")
	if url == "" {
		t.Skip("SERVERCONF_TEST_NATS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := OpenNATS(ctx, url, fmt.Sprintf("serverconf_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	testStoreContract(t, s)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(context.Background(), Options{Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, err = Open(context.Background(), Options{Backend: "etcd"})
	assert.Error(t, err)
}
