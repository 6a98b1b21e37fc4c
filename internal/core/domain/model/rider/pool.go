package rider

import (
	"errors"
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// ErrNoRiderAvailable is returned by Acquire when every rider is out.
var ErrNoRiderAvailable = errs.NewResourceUnavailableError("rider")

// Pool hands riders out in first-in first-out order.
type Pool struct {
	queue []*Rider
}

// NewPool creates riders for names in the given order.
func NewPool(names ...string) (*Pool, error) {
	p := &Pool{queue: make([]*Rider, 0, len(names))}

	var errList []error
	for i, name := range names {
		r, err := NewRider(name)
		if err != nil {
			errList = append(errList, fmt.Errorf("rider %d: %w", i, err))
			continue
		}
		p.queue = append(p.queue, r)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return p, nil
}

// Acquire removes and returns the rider at the front of the queue.
func (p *Pool) Acquire() (*Rider, error) {
	if len(p.queue) == 0 {
		return nil, ErrNoRiderAvailable
	}
	r := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return r, nil
}

// Release puts a rider at the back of the queue.
func (p *Pool) Release(r *Rider) error {
	if err := r.Validate(); err != nil {
		return err
	}
	p.queue = append(p.queue, r)
	return nil
}

// Len returns the number of riders waiting.
func (p *Pool) Len() int {
	return len(p.queue)
}

// Names returns the waiting riders' names from front to back.
func (p *Pool) Names() []string {
	names := make([]string, len(p.queue))
	for i, r := range p.queue {
		names[i] = r.Name()
	}
	return names
}
