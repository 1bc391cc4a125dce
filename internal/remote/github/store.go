package github

import (
	"sync"

	"github.com/moorara/gitch/internal/remote"
)

// releaseStore holds release pages fetched concurrently, keyed by page number.
type releaseStore struct {
	sync.Mutex
	m map[int][]release
}

func newReleaseStore() *releaseStore {
	return &releaseStore{
		m: make(map[int][]release),
	}
}

func (s *releaseStore) Save(page int, releases []release) {
	s.Lock()
	defer s.Unlock()

	s.m[page] = releases
}

// Releases joins pages 1 through count in page order.
func (s *releaseStore) Releases(count int) remote.Releases {
	s.Lock()
	defer s.Unlock()

	releases := remote.Releases{}
	for page := 1; page <= count; page++ {
		for _, r := range s.m[page] {
			releases = append(releases, toRelease(r))
		}
	}

	return releases
}
