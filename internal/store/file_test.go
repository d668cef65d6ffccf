package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/serverconf/internal/document"
)

func TestFileContract(t *testing.T) {
	s, err := NewFile(t.TempDir())
	require.NoError(t, err)
	testStoreContract(t, s)
}

func TestNewFileRequiresDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSafe bool
	}{
		{"plain name unchanged", "cocoMDS1", true},
		{"path separators", "a/b\\c", false},
		{"dots and spaces", "my server.v1", false},
		{"only specials", "...", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeName(tt.input)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, "\\")
			assert.NotContains(t, got, ".")
			if tt.wantSafe {
				assert.Equal(t, tt.input, got)
			} else {
				assert.NotEqual(t, tt.input, got)
				assert.True(t, strings.HasSuffix(got, shortHash(tt.input)))
			}
		})
	}
	assert.NotEqual(t, sanitizeName("a.b"), sanitizeName("a_b"))
}

func TestFileLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), sampleDocument("cocoMDS1")))

	data, err := os.ReadFile(filepath.Join(dir, "cocoMDS1.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "revision: 1")
	assert.Contains(t, string(data), "serverName: cocoMDS1")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFileListSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), sampleDocument("good")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":::not yaml"), 0644))

	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, names)

	_, err = s.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestFileSaveAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	const writers, appends = 4, 10

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		s, err := NewFile(dir)
		require.NoError(t, err)
		wg.Add(1)
		go func(s *File) {
			defer wg.Done()
			for n := 0; n < appends; {
				doc, err := s.Load(context.Background(), "cocoMDS1")
				if IsNotFound(err) {
					doc, err = document.New("cocoMDS1"), nil
				}
				if !assert.NoError(t, err) {
					return
				}
				doc.AuditTrail = append(doc.AuditTrail, "entry")
				err = s.Save(context.Background(), doc)
				if IsConflict(err) {
					continue
				}
				if !assert.NoError(t, err) {
					return
				}
				n++
			}
		}(s)
	}
	wg.Wait()

	reader, err := NewFile(dir)
	require.NoError(t, err)
	doc, err := reader.Load(context.Background(), "cocoMDS1")
	require.NoError(t, err)
	assert.Len(t, doc.AuditTrail, writers*appends, "no save overwrote another")
	assert.Equal(t, formatRevision(writers*appends), doc.Revision)
}
