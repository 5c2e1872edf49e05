package interaction

import (
	"fmt"
	"time"

	"github.com/roach88/bundlecore/internal/key"
	"github.com/roach88/bundlecore/internal/resource"
)

// Clock supplies the default interaction time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Factory builds interactions. Every constructor goes through the same
// private path, so the key/timestamp rules hold for all of them.
type Factory struct {
	clock Clock
}

// NewFactory creates a factory that timestamps with clock.
// A nil clock means SystemClock.
func NewFactory(clock Clock) *Factory {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Factory{clock: clock}
}

var defaultFactory = NewFactory(nil)

// construct is the single constructor.
//
// With a payload, a non-zero k is applied onto a clone of res; a zero k leaves
// the payload's own identity alone. Without a payload, k is stored locally as
// given. A nil when means now. The timestamp is always set through the binding.
func (f *Factory) construct(method Verb, k key.Key, when *time.Time, res *resource.Resource) (*Interaction, error) {
	i := &Interaction{
		method: method,
		state:  StateUndefined,
	}
	if res != nil {
		owned := res.Clone()
		if !k.IsZero() {
			if err := k.ApplyTo(owned); err != nil {
				return nil, fmt.Errorf("new %s interaction: %w", method, err)
			}
		}
		i.bound = resourceBinding{res: owned}
	} else {
		i.bound = localBinding{key: k}
	}

	if when == nil {
		now := f.now()
		when = &now
	}
	i.SetWhen(*when)
	return i, nil
}

func (f *Factory) now() time.Time {
	return f.clock.Now().UTC()
}

// mustConstruct is construct for callers that never apply a key.
func (f *Factory) mustConstruct(method Verb, k key.Key, when *time.Time, res *resource.Resource) *Interaction {
	i, err := f.construct(method, k, when, res)
	if err != nil {
		panic(fmt.Sprintf("interaction: unexpected construction error: %v", err))
	}
	return i
}

// New creates an interaction whose identity comes from res itself.
func (f *Factory) New(method Verb, res *resource.Resource) *Interaction {
	return f.mustConstruct(method, key.Key{}, nil, res)
}

// NewWithKey creates an interaction and applies k onto the payload.
// A zero k keeps the payload's identity. Fails if k cannot be applied.
func (f *Factory) NewWithKey(method Verb, k key.Key, res *resource.Resource) (*Interaction, error) {
	return f.construct(method, k, nil, res)
}

// NewAt creates an identity-only interaction at an explicit time.
func (f *Factory) NewAt(method Verb, k key.Key, when time.Time) *Interaction {
	return f.mustConstruct(method, k, &when, nil)
}

// Delete creates a delete of k stamped with the current time.
// when is accepted for call-site symmetry and not used; deletes are
// recorded at the moment they are built. Use DeleteAt to choose the time.
func (f *Factory) Delete(k key.Key, when *time.Time) *Interaction {
	return f.NewAt(VerbDelete, k, f.now())
}

// DeleteAt creates a delete of k at the given time.
func (f *Factory) DeleteAt(k key.Key, when time.Time) *Interaction {
	return f.NewAt(VerbDelete, k, when)
}

// Post creates a create interaction for res.
func (f *Factory) Post(res *resource.Resource) *Interaction {
	return f.New(VerbPost, res)
}

// PostWithKey creates a create interaction for res under k.
func (f *Factory) PostWithKey(k key.Key, res *resource.Resource) (*Interaction, error) {
	return f.NewWithKey(VerbPost, k, res)
}

// Put creates an update interaction replacing k with res.
func (f *Factory) Put(k key.Key, res *resource.Resource) (*Interaction, error) {
	return f.NewWithKey(VerbPut, k, res)
}

// New creates an interaction whose identity comes from res, timestamped now.
func New(method Verb, res *resource.Resource) *Interaction {
	return defaultFactory.New(method, res)
}

// NewWithKey creates an interaction and applies k onto the payload.
func NewWithKey(method Verb, k key.Key, res *resource.Resource) (*Interaction, error) {
	return defaultFactory.NewWithKey(method, k, res)
}

// NewAt creates an identity-only interaction at an explicit time.
func NewAt(method Verb, k key.Key, when time.Time) *Interaction {
	return defaultFactory.NewAt(method, k, when)
}

// Delete creates a delete of k stamped with the current time; when is ignored.
func Delete(k key.Key, when *time.Time) *Interaction {
	return defaultFactory.Delete(k, when)
}

// DeleteAt creates a delete of k at the given time.
func DeleteAt(k key.Key, when time.Time) *Interaction {
	return defaultFactory.DeleteAt(k, when)
}

// Post creates a create interaction for res.
func Post(res *resource.Resource) *Interaction {
	return defaultFactory.Post(res)
}

// PostWithKey creates a create interaction for res under k.
func PostWithKey(k key.Key, res *resource.Resource) (*Interaction, error) {
	return defaultFactory.PostWithKey(k, res)
}

// Put creates an update interaction replacing k with res.
func Put(k key.Key, res *resource.Resource) (*Interaction, error) {
	return defaultFactory.Put(k, res)
}
