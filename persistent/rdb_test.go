package persistent

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memStore struct {
	dbs [][]*Record
}

func (s *memStore) DBCount() int {
	return len(s.dbs)
}

func (s *memStore) Snapshot(dbIndex int) []*Record {
	return s.dbs[dbIndex]
}

func (s *memStore) Restore(dbIndex int, rec *Record) {
	s.dbs[dbIndex] = append(s.dbs[dbIndex], rec)
}

func sampleStore() *memStore {
	expireAt := time.UnixMilli(time.Now().Add(time.Hour).UnixMilli())
	return &memStore{dbs: [][]*Record{
		{
			{Key: "s", Value: []byte("v")},
			{Key: "h", Value: map[string][]byte{"f1": []byte("a"), "f2": []byte("b")}},
		},
		{},
		{
			{Key: "ttl", Value: []byte("soon"), ExpireAt: &expireAt},
		},
	}}
}

func requireSameStore(t *testing.T, want, got *memStore) {
	for i := range want.dbs {
		byKey := make(map[string]*Record)
		for _, rec := range got.dbs[i] {
			byKey[rec.Key] = rec
		}
		require.Len(t, byKey, len(want.dbs[i]), "db %d", i)
		for _, rec := range want.dbs[i] {
			loaded, ok := byKey[rec.Key]
			require.True(t, ok, rec.Key)
			require.Equal(t, rec.Value, loaded.Value)
			if rec.ExpireAt == nil {
				require.Nil(t, loaded.ExpireAt)
			} else {
				require.NotNil(t, loaded.ExpireAt)
				require.Equal(t, rec.ExpireAt.UnixMilli(), loaded.ExpireAt.UnixMilli())
			}
		}
	}
}

func TestSaveLoad(t *testing.T) {
	src := sampleStore()
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, src))

	dst := &memStore{dbs: make([][]*Record, 3)}
	require.NoError(t, Load(&buf, dst))
	requireSameStore(t, src, dst)
}

func TestSaveUnsupported(t *testing.T) {
	src := &memStore{dbs: [][]*Record{{{Key: "bad", Value: 42}}}}
	var buf bytes.Buffer
	require.Error(t, Save(&buf, src))
}

func TestSaveLoadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "dump.rdb")
	src := sampleStore()
	require.NoError(t, SaveFile(filename, src))

	dst := &memStore{dbs: make([][]*Record, 3)}
	require.NoError(t, LoadFile(filename, dst))
	requireSameStore(t, src, dst)

	err := LoadFile(filepath.Join(t.TempDir(), "missing.rdb"), dst)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
