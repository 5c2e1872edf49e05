package key

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/bundlecore/internal/resource"
)

// historySegment separates a resource id from its version id.
const historySegment = "_history"

// Key identifies a resource, optionally at a specific version.
// The zero Key identifies nothing.
type Key struct {
	Base       string `json:"base,omitempty" yaml:"base,omitempty"`
	TypeName   string `json:"type" yaml:"type"`
	ResourceID string `json:"id,omitempty" yaml:"id,omitempty"`
	VersionID  string `json:"version_id,omitempty" yaml:"version_id,omitempty"`
}

// New returns a normalised key with no base.
func New(typeName, resourceID, versionID string) Key {
	return Key{
		TypeName:   normalize(typeName),
		ResourceID: normalize(resourceID),
		VersionID:  normalize(versionID),
	}
}

// Parse parses a relative or absolute resource reference.
//
// Absolute references must carry at least a type and an id; the base is
// everything in front of them.
func Parse(s string) (Key, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Key{}, &Error{Code: ErrCodeInvalidKey, Message: "empty key"}
	}

	var base string
	path := strings.Trim(raw, "/")
	if i := strings.Index(path, "://"); i >= 0 {
		segs := strings.Split(path[i+3:], "/")
		n := 2
		if len(segs) >= 4 && segs[len(segs)-2] == historySegment {
			n = 4
		}
		// host plus the resource part
		if len(segs) < n+1 {
			return Key{}, &Error{Code: ErrCodeInvalidKey, Message: "absolute key needs type and id", Key: raw}
		}
		base = path[:i+3] + strings.Join(segs[:len(segs)-n], "/")
		path = strings.Join(segs[len(segs)-n:], "/")
	}

	segs := strings.Split(path, "/")
	for _, seg := range segs {
		if seg == "" {
			return Key{}, &Error{Code: ErrCodeInvalidKey, Message: "empty path segment", Key: raw}
		}
	}

	var k Key
	switch len(segs) {
	case 1:
		k = New(segs[0], "", "")
	case 2:
		k = New(segs[0], segs[1], "")
	case 4:
		if segs[2] != historySegment {
			return Key{}, &Error{
				Code:    ErrCodeInvalidKey,
				Message: fmt.Sprintf("expected %q, got %q", historySegment, segs[2]),
				Key:     raw,
			}
		}
		k = New(segs[0], segs[1], segs[3])
	default:
		return Key{}, &Error{Code: ErrCodeInvalidKey, Message: "unrecognised key shape", Key: raw}
	}
	if k.TypeName == historySegment || k.ResourceID == historySegment {
		return Key{}, &Error{Code: ErrCodeInvalidKey, Message: "misplaced history segment", Key: raw}
	}
	k.Base = base
	return k, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level literals.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsZero reports whether k identifies nothing.
func (k Key) IsZero() bool {
	return k == Key{}
}

// HasResourceID reports whether k names a specific resource.
func (k Key) HasResourceID() bool {
	return k.ResourceID != ""
}

// HasVersionID reports whether k names a specific version.
func (k Key) HasVersionID() bool {
	return k.VersionID != ""
}

// WithoutVersion returns k with the version removed.
func (k Key) WithoutVersion() Key {
	k.VersionID = ""
	return k
}

// WithoutBase returns k as a relative key.
func (k Key) WithoutBase() Key {
	k.Base = ""
	return k
}

// Equal reports whether k and other identify the same resource version.
// Bases are compared too; use WithoutBase to compare relative identity.
func (k Key) Equal(other Key) bool {
	return k.normalized() == other.normalized()
}

// Validate checks that k is usable as an identity on its own.
func (k Key) Validate() error {
	if k.IsZero() {
		return invalidIdentity(k, "identity is empty")
	}
	if k.TypeName == "" {
		return invalidIdentity(k, "identity has no resource type")
	}
	if k.HasVersionID() && !k.HasResourceID() {
		return invalidIdentity(k, "version without resource id")
	}
	return nil
}

// String renders k as a reference, e.g. "Patient/42/_history/3".
func (k Key) String() string {
	var parts []string
	if k.Base != "" {
		parts = append(parts, strings.TrimRight(k.Base, "/"))
	}
	if k.TypeName != "" {
		parts = append(parts, k.TypeName)
	}
	if k.ResourceID != "" {
		parts = append(parts, k.ResourceID)
	}
	if k.VersionID != "" {
		parts = append(parts, historySegment, k.VersionID)
	}
	return strings.Join(parts, "/")
}

// ExtractFrom reads the identity of res. A nil resource yields the zero Key.
func ExtractFrom(res *resource.Resource) Key {
	if res == nil {
		return Key{}
	}
	k := New(res.TypeName, res.ID, res.VersionID())
	k.Base = res.Base
	return k
}

// ApplyTo writes k onto the identity fields of res, in place.
//
// The base and resource id are always overwritten. The version id is overwritten when
// k has one and cleared otherwise. A resource without a type takes the key's
// type; a resource with a different type is rejected.
func (k Key) ApplyTo(res *resource.Resource) error {
	if res == nil {
		return invalidIdentity(k, "cannot apply identity to a nil resource")
	}
	if k.TypeName == "" {
		return invalidIdentity(k, "identity has no resource type")
	}
	if k.HasVersionID() && !k.HasResourceID() {
		return invalidIdentity(k, "version without resource id")
	}
	n := k.normalized()
	switch res.TypeName {
	case "":
		res.TypeName = n.TypeName
	case n.TypeName:
	default:
		return invalidIdentity(k, "resource type %q does not match", res.TypeName)
	}

	res.Base = n.Base
	res.ID = n.ResourceID
	if n.HasVersionID() {
		res.EnsureMeta().VersionID = n.VersionID
	} else if res.Meta != nil {
		res.Meta.VersionID = ""
	}
	return nil
}

func (k Key) normalized() Key {
	return Key{
		Base:       k.Base,
		TypeName:   normalize(k.TypeName),
		ResourceID: normalize(k.ResourceID),
		VersionID:  normalize(k.VersionID),
	}
}

func normalize(s string) string {
	return norm.NFC.String(s)
}
