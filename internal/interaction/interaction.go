package interaction

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/bundlecore/internal/key"
	"github.com/roach88/bundlecore/internal/resource"
)

// binding is where an interaction's key and timestamp are stored.
// Implemented by localBinding and resourceBinding only.
type binding interface {
	isBinding()
}

// localBinding holds key and timestamp on the interaction itself.
type localBinding struct {
	key  key.Key
	when *time.Time
}

// resourceBinding delegates key and timestamp to the owned resource.
type resourceBinding struct {
	res *resource.Resource
}

func (localBinding) isBinding() {}
func (resourceBinding) isBinding() {}

// Interaction is a single create, update, delete or retrieve of a resource.
// Build one with a Factory or the package-level constructors. The zero value
// has no verb, no key and no timestamp.
type Interaction struct {
	method Verb
	state  State
	bound  binding
}

// storage returns the current binding; nil reads as empty local storage.
func (i *Interaction) storage() binding {
	if i.bound == nil {
		return localBinding{}
	}
	return i.bound
}

// Key returns the identity of the target resource. With a payload it is
// re-read from the resource on every call. The zero Key means no identity.
func (i *Interaction) Key() key.Key {
	switch b := i.storage().(type) {
	case resourceBinding:
		return key.ExtractFrom(b.res)
	case localBinding:
		return b.key
	default:
		panic(fmt.Sprintf("interaction: unknown binding %T", b))
	}
}

// SetKey sets the identity of the target resource. With a payload the key is
// applied onto the resource's own identity fields.
func (i *Interaction) SetKey(k key.Key) error {
	switch b := i.storage().(type) {
	case resourceBinding:
		if err := k.ApplyTo(b.res); err != nil {
			return fmt.Errorf("set key: %w", err)
		}
		return nil
	case localBinding:
		if err := k.Validate(); err != nil {
			return fmt.Errorf("set key: %w", err)
		}
		b.key = k
		i.bound = b
		return nil
	default:
		panic(fmt.Sprintf("interaction: unknown binding %T", b))
	}
}

// When returns the time the interaction is considered to have occurred.
// With a payload this is meta.lastUpdated, absent until metadata exists.
func (i *Interaction) When() (time.Time, bool) {
	var t *time.Time
	switch b := i.storage().(type) {
	case resourceBinding:
		t = b.res.LastUpdated()
	case localBinding:
		t = b.when
	default:
		panic(fmt.Sprintf("interaction: unknown binding %T", b))
	}
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// SetWhen sets the interaction time. With a payload it writes
// meta.lastUpdated, creating the metadata block if needed.
func (i *Interaction) SetWhen(t time.Time) {
	switch b := i.storage().(type) {
	case resourceBinding:
		b.res.SetLastUpdated(&t)
	case localBinding:
		b.when = &t
		i.bound = b
	default:
		panic(fmt.Sprintf("interaction: unknown binding %T", b))
	}
}

// Resource returns the owned payload, or nil.
func (i *Interaction) Resource() *resource.Resource {
	if b, ok := i.bound.(resourceBinding); ok {
		return b.res
	}
	return nil
}

// SetResource replaces the payload with a clone of res.
//
// Attaching a payload makes it the home of key and timestamp; any locally
// held values are discarded, not copied onto it. Passing nil detaches the
// current payload and keeps its key and timestamp locally.
func (i *Interaction) SetResource(res *resource.Resource) {
	if res == nil {
		i.detach()
		return
	}
	i.bound = resourceBinding{res: res.Clone()}
}

// detach moves key and timestamp off the payload into local storage and
// drops the payload. No-op when there is no payload.
func (i *Interaction) detach() {
	b, ok := i.bound.(resourceBinding)
	if !ok {
		return
	}
	slog.Debug("detaching resource from interaction",
		"method", i.method,
		"key", key.ExtractFrom(b.res).String(),
	)
	i.bound = localBinding{
		key:  key.ExtractFrom(b.res),
		when: b.res.LastUpdated(),
	}
}

// Method returns the verb.
func (i *Interaction) Method() Verb {
	return i.method
}

// SetMethod sets the verb.
func (i *Interaction) SetMethod(v Verb) {
	i.method = v
}

// State returns the pipeline stage tag.
func (i *Interaction) State() State {
	return i.state
}

// SetState sets the pipeline stage tag. Any transition is allowed.
func (i *Interaction) SetState(s State) {
	i.state = s
}

// IsDeleted reports whether the verb is DELETE.
func (i *Interaction) IsDeleted() bool {
	return i.method == VerbDelete
}

// MarkDeleted turns the interaction into a delete: the verb becomes DELETE
// and the payload is dropped. The payload's key and timestamp are kept
// locally so the interaction still says what was deleted and when.
func (i *Interaction) MarkDeleted() {
	i.method = VerbDelete
	i.detach()
}

// IsPresent reports whether the interaction leaves the resource in place,
// that is, the verb is anything but DELETE.
func (i *Interaction) IsPresent() bool {
	return i.method != VerbDelete
}

// String renders "<VERB> <key>" for diagnostics.
func (i *Interaction) String() string {
	return fmt.Sprintf("%s %s", i.method, i.Key())
}

// Summary is a flat, read-only view of an interaction for output.
type Summary struct {
	Method      Verb       `json:"method"`
	Key         string     `json:"key"`
	When        *time.Time `json:"when,omitempty"`
	State       string     `json:"state"`
	HasResource bool       `json:"has_resource"`
}

// Summarize returns a snapshot of the interaction.
func (i *Interaction) Summarize() Summary {
	s := Summary{
		Method:      i.method,
		Key:         i.Key().String(),
		State:       i.state.String(),
		HasResource: i.Resource() != nil,
	}
	if t, ok := i.When(); ok {
		s.When = &t
	}
	return s
}

// LogValue implements slog.LogValuer.
func (i *Interaction) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("method", string(i.method)),
		slog.String("key", i.Key().String()),
		slog.String("state", i.state.String()),
		slog.Bool("has_resource", i.Resource() != nil),
	}
	if t, ok := i.When(); ok {
		attrs = append(attrs, slog.Time("when", t))
	}
	return slog.GroupValue(attrs...)
}
