package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// NATS stores documents in a JetStream key-value bucket. The entry revision
// is the document revision.
type NATS struct {
	conn   *nats.Conn
	bucket jetstream.KeyValue
}

// OpenNATS connects to url and opens (or creates) bucket.
func OpenNATS(ctx context.Context, url, bucket string) (*NATS, error) {
	conn, err := nats.Connect(url, nats.Name("serverconf"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "serverconf configuration documents",
			History:     5,
		})
		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, err = js.KeyValue(ctx, bucket)
		}
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open KV bucket %s: %w", bucket, err)
	}

	logging.Info("Storage", "Using NATS KV bucket %s at %s", bucket, url)
	return &NATS{conn: conn, bucket: kv}, nil
}

// natsKey encodes a server name into the restricted NATS key alphabet.
func natsKey(serverName string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(serverName))
}

// Load implements Store.
func (n *NATS) Load(ctx context.Context, serverName string) (*document.ServerConfig, error) {
	entry, err := n.bucket.Get(ctx, natsKey(serverName))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server %s: %w", serverName, err)
	}

	var doc document.ServerConfig
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode server %s: %w", serverName, err)
	}
	doc.Revision = strconv.FormatUint(entry.Revision(), 10)
	return &doc, nil
}

// Save implements Store.
func (n *NATS) Save(ctx context.Context, doc *document.ServerConfig) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode server %s: %w", doc.ServerName, err)
	}
	key := natsKey(doc.ServerName)

	var rev uint64
	if doc.Revision == "" {
		rev, err = n.bucket.Create(ctx, key, data)
		if errors.Is(err, jetstream.ErrKeyExists) {
			return ErrConflict
		}
	} else {
		expected, perr := strconv.ParseUint(doc.Revision, 10, 64)
		if perr != nil {
			return ErrConflict
		}
		rev, err = n.bucket.Update(ctx, key, data, expected)
		if isWrongSequence(err) {
			return ErrConflict
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write server %s: %w", doc.ServerName, err)
	}
	doc.Revision = strconv.FormatUint(rev, 10)
	return nil
}

// isWrongSequence reports the JetStream error for a failed CAS update.
func isWrongSequence(err error) bool {
	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
	}
	return err != nil && strings.Contains(err.Error(), "wrong last sequence")
}

// List implements Store.
func (n *NATS) List(ctx context.Context) ([]string, error) {
	keys, err := n.bucket.Keys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		raw, err := base64.RawURLEncoding.DecodeString(key)
		if err != nil {
			logging.Warn("Storage", "Skipping foreign key %s in KV bucket", key)
			continue
		}
		names = append(names, string(raw))
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Store.
func (n *NATS) Close() error {
	n.conn.Close()
	return nil
}
