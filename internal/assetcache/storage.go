package assetcache

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Response is a stored copy of a network response.
type Response struct {
	Status      int
	ContentType string
	Header      http.Header
	Body        []byte
}

func (r Response) clone() Response {
	out := r
	out.Header = r.Header.Clone()
	out.Body = append([]byte(nil), r.Body...)
	return out
}

type VersionInfo struct {
	Version     string
	InstalledAt time.Time
	Entries     int
}

// Storage persists cache versions. Commit must be atomic: either every entry
// and the version marker are written, or nothing is.
type Storage interface {
	Commit(ctx context.Context, version string, installedAt time.Time, entries map[string]Response) error
	// Versions lists installed versions, newest first.
	Versions(ctx context.Context) ([]VersionInfo, error)
	DeleteVersion(ctx context.Context, version string) error
	Lookup(ctx context.Context, version, resource string) (Response, bool, error)
}

var _ Storage = (*MemoryStorage)(nil)

type MemoryStorage struct {
	mu       sync.RWMutex
	versions map[string]memoryVersion
}

type memoryVersion struct {
	installedAt time.Time
	seq         int
	entries     map[string]Response
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{versions: make(map[string]memoryVersion)}
}

func (m *MemoryStorage) Commit(_ context.Context, version string, installedAt time.Time, entries map[string]Response) error {
	copied := make(map[string]Response, len(entries))
	for k, v := range entries {
		copied[k] = v.clone()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	seq := 0
	for _, v := range m.versions {
		if v.seq >= seq {
			seq = v.seq + 1
		}
	}
	m.versions[version] = memoryVersion{installedAt: installedAt, seq: seq, entries: copied}
	return nil
}

func (m *MemoryStorage) Versions(_ context.Context) ([]VersionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	type row struct {
		info VersionInfo
		seq  int
	}
	rows := make([]row, 0, len(m.versions))
	for name, v := range m.versions {
		rows = append(rows, row{info: VersionInfo{Version: name, InstalledAt: v.installedAt, Entries: len(v.entries)}, seq: v.seq})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].info.InstalledAt.Equal(rows[j].info.InstalledAt) {
			return rows[i].info.InstalledAt.After(rows[j].info.InstalledAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]VersionInfo, len(rows))
	for i, r := range rows {
		out[i] = r.info
	}
	return out, nil
}

func (m *MemoryStorage) DeleteVersion(_ context.Context, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.versions, version)
	return nil
}

func (m *MemoryStorage) Lookup(_ context.Context, version, resource string) (Response, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.versions[version]
	if !ok {
		return Response{}, false, nil
	}
	resp, ok := v.entries[resource]
	if !ok {
		return Response{}, false, nil
	}
	return resp.clone(), true, nil
}
