package testimonials

import (
	"context"
	"sync"
	"time"
)

type repoMock struct {
	mutex        sync.Mutex
	testimonials map[int]*Testimonial
	nextID       int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		testimonials: make(map[int]*Testimonial),
		nextID:       1,
	}
}

func (r *repoMock) Add(_ context.Context, t *Testimonial) (*Testimonial, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	t.ID = r.nextID
	r.nextID++
	t.Status = StatusPending
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.testimonials[t.ID] = t
	return t, nil
}

func (r *repoMock) SetStatus(_ context.Context, id int, status string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	t, ok := r.testimonials[id]
	if !ok {
		return ErrTestimonialNotFound
	}

	t.Status = status
	if status == StatusApproved {
		now := time.Now()
		t.ApprovedAt = &now
	} else {
		t.ApprovedAt = nil
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.testimonials[id]; !ok {
		return ErrTestimonialNotFound
	}
	delete(r.testimonials, id)
	return nil
}

func (r *repoMock) List(_ context.Context, approvedOnly bool) ([]Testimonial, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var testimonials []Testimonial
	for _, t := range r.testimonials {
		if approvedOnly && t.Status != StatusApproved {
			continue
		}
		testimonials = append(testimonials, *t)
	}
	return testimonials, nil
}
