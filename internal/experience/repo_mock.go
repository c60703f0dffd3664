package experience

import (
	"context"
	"sync"
)

type repoMock struct {
	mutex   sync.Mutex
	entries map[int]*Entry
	nextID  int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		entries: make(map[int]*Entry),
		nextID:  1,
	}
}

func (r *repoMock) Add(_ context.Context, entry *Entry) (*Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := entry.validDates(); err != nil {
		return nil, err
	}

	entry.ID = r.nextID
	r.nextID++
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *repoMock) Update(_ context.Context, entry *Entry) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.entries[entry.ID]; !ok {
		return ErrEntryNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.entries[id]; !ok {
		return ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *repoMock) List(context.Context) ([]Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var entries []Entry
	for _, e := range r.entries {
		entries = append(entries, *e)
	}
	return entries, nil
}
