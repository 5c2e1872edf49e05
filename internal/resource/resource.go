// Package resource defines the payload carried by an interaction.
//
// A Resource is deliberately thin: a type name, a logical id, an optional
// metadata block and an opaque body. Content validation and serialization
// formats belong to the surrounding store, not to this package.
package resource

import "time"

// Meta is the resource metadata block.
type Meta struct {
	VersionID   string     `json:"version_id,omitempty" yaml:"version_id,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Resource is a versioned resource body.
type Resource struct {
	// Base is the service base URL the resource lives under, if known.
	Base     string         `json:"base,omitempty" yaml:"base,omitempty"`
	TypeName string         `json:"resource_type" yaml:"resource_type"`
	ID       string         `json:"id,omitempty" yaml:"id,omitempty"`
	Meta     *Meta          `json:"meta,omitempty" yaml:"meta,omitempty"`
	Body     map[string]any `json:"body,omitempty" yaml:"body,omitempty"`
}

// New returns a resource of the given type with no id and no metadata.
func New(typeName string) *Resource {
	return &Resource{TypeName: typeName}
}

// EnsureMeta returns the metadata block, creating it if missing.
func (r *Resource) EnsureMeta() *Meta {
	if r.Meta == nil {
		r.Meta = &Meta{}
	}
	return r.Meta
}

// LastUpdated returns meta.lastUpdated, or nil when there is no metadata.
func (r *Resource) LastUpdated() *time.Time {
	if r.Meta == nil || r.Meta.LastUpdated == nil {
		return nil
	}
	t := *r.Meta.LastUpdated
	return &t
}

// SetLastUpdated writes meta.lastUpdated, creating the metadata block.
func (r *Resource) SetLastUpdated(t *time.Time) {
	m := r.EnsureMeta()
	if t == nil {
		m.LastUpdated = nil
		return
	}
	v := *t
	m.LastUpdated = &v
}

// VersionID returns meta.versionId, or "" when there is no metadata.
func (r *Resource) VersionID() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta.VersionID
}

// Clone returns a deep copy of r. Clone of nil is nil.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	out := &Resource{
		Base:     r.Base,
		TypeName: r.TypeName,
		ID:       r.ID,
		Body:     cloneMap(r.Body),
	}
	if r.Meta != nil {
		m := *r.Meta
		if r.Meta.LastUpdated != nil {
			t := *r.Meta.LastUpdated
			m.LastUpdated = &t
		}
		out.Meta = &m
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		arr := make([]any, len(val))
		for i, elem := range val {
			arr[i] = cloneValue(elem)
		}
		return arr
	default:
		return val
	}
}
