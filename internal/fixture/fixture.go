// Package fixture loads interaction fixtures from YAML.
//
// A fixture is a named list of interaction descriptions. Building a fixture
// runs every entry through the interaction factories, so a fixture exercises
// exactly the construction rules that production callers get.
//
//	name: admit-patient
//	description: Create a patient, then retire an old record
//	interactions:
//	  - method: POST
//	    resource:
//	      resource_type: Patient
//	      body: {active: true}
//	  - method: DELETE
//	    key: Patient/old-1
//	    when: 2024-01-01T00:00:00Z
package fixture

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bundlecore/internal/interaction"
	"github.com/roach88/bundlecore/internal/key"
	"github.com/roach88/bundlecore/internal/resource"
)

// Fixture is a named batch of interactions.
type Fixture struct {
	// Name uniquely identifies this fixture.
	Name string `yaml:"name"`

	// Description explains what this fixture covers.
	Description string `yaml:"description,omitempty"`

	// Interactions are built in order.
	Interactions []Entry `yaml:"interactions"`
}

// Entry describes one interaction.
type Entry struct {
	// Method is the verb: POST, PUT, DELETE or GET.
	Method string `yaml:"method"`

	// Key is an optional reference such as "Patient/42/_history/1".
	// With a resource it overrides the resource's own identity.
	Key string `yaml:"key,omitempty"`

	// When is an optional RFC 3339 timestamp. Defaults to build time.
	When string `yaml:"when,omitempty"`

	// State is an optional pipeline state name.
	State string `yaml:"state,omitempty"`

	// Deleted turns the interaction into a delete after it is built.
	Deleted bool `yaml:"deleted,omitempty"`

	// Resource is the optional payload.
	Resource *resource.Resource `yaml:"resource,omitempty"`
}

// Load reads and parses a fixture YAML file.
// Unknown fields are rejected.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// Parse parses fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validate(&fx); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &fx, nil
}

func validate(fx *Fixture) error {
	if fx.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(fx.Interactions) == 0 {
		return fmt.Errorf("interactions list is required and must be non-empty")
	}
	for i, e := range fx.Interactions {
		if _, err := interaction.ParseVerb(e.Method); err != nil {
			return fmt.Errorf("interactions[%d]: %w", i, err)
		}
		if e.Key != "" {
			if _, err := key.Parse(e.Key); err != nil {
				return fmt.Errorf("interactions[%d]: %w", i, err)
			}
		}
		if e.When != "" {
			if _, err := time.Parse(time.RFC3339, e.When); err != nil {
				return fmt.Errorf("interactions[%d]: when: %w", i, err)
			}
		}
		if e.State != "" {
			if _, err := interaction.ParseState(e.State); err != nil {
				return fmt.Errorf("interactions[%d]: %w", i, err)
			}
		}
		if e.Resource == nil && e.Key == "" && e.Method != string(interaction.VerbGet) {
			return fmt.Errorf("interactions[%d]: key or resource is required", i)
		}
	}
	return nil
}

// Builder turns fixture entries into interactions.
type Builder struct {
	// Factory builds every interaction.
	Factory *interaction.Factory

	// IDs assigns ids to POST resources that arrive without one.
	// Nil leaves such resources without an id.
	IDs key.Generator
}

// Build builds every entry of fx, in order.
func (b *Builder) Build(fx *Fixture) ([]*interaction.Interaction, error) {
	out := make([]*interaction.Interaction, 0, len(fx.Interactions))
	for i := range fx.Interactions {
		ix, err := b.BuildEntry(&fx.Interactions[i])
		if err != nil {
			return nil, fmt.Errorf("%s: interactions[%d]: %w", fx.Name, i, err)
		}
		out = append(out, ix)
	}
	return out, nil
}

// BuildEntry builds a single entry. The entry is not modified.
func (b *Builder) BuildEntry(e *Entry) (*interaction.Interaction, error) {
	method, err := interaction.ParseVerb(e.Method)
	if err != nil {
		return nil, err
	}

	var k key.Key
	if e.Key != "" {
		if k, err = key.Parse(e.Key); err != nil {
			return nil, err
		}
	}

	var when *time.Time
	if e.When != "" {
		t, err := time.Parse(time.RFC3339, e.When)
		if err != nil {
			return nil, fmt.Errorf("when: %w", err)
		}
		when = &t
	}

	res := e.Resource.Clone()
	if res != nil && method == interaction.VerbPost && k.IsZero() && b.IDs != nil {
		if _, err := key.Assign(res, b.IDs); err != nil {
			return nil, err
		}
	}

	var ix *interaction.Interaction
	switch {
	case res == nil && when != nil:
		ix = b.Factory.NewAt(method, k, *when)
	default:
		if ix, err = b.Factory.NewWithKey(method, k, res); err != nil {
			return nil, err
		}
		if when != nil {
			ix.SetWhen(*when)
		}
	}

	if e.State != "" {
		st, err := interaction.ParseState(e.State)
		if err != nil {
			return nil, err
		}
		ix.SetState(st)
	}
	if e.Deleted {
		ix.MarkDeleted()
	}
	return ix, nil
}
