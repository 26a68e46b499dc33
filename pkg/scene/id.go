package scene

import (
	"github.com/google/uuid"

	"github.com/matzehuels/scenegraph/pkg/errors"
)

// ID identifies a node independently of where it sits in the tree. IDs are
// random v4 UUIDs; the zero ID is "no identity" and is never assigned.
type ID uuid.UUID

// NilID is the zero ID.
var NilID = ID(uuid.Nil)

// NewID returns a fresh random identity.
func NewID() ID { return ID(uuid.New()) }

// ParseID decodes the canonical textual form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse id %q", s)
	}
	return ID(u), nil
}

// Clone returns an independent copy that compares equal to id.
func (id ID) Clone() ID {
	var out ID
	copy(out[:], id[:])
	return out
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool { return id == NilID }

// String returns the canonical UUID form.
func (id ID) String() string { return uuid.UUID(id).String() }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = ID(u)
	return nil
}
