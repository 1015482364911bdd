// Package identity provides the tagged identifier shared by menu entries and
// store images: an entity is either pending (known only to the local session)
// or confirmed (persisted by the backend under a server-assigned id).
package identity

import "fmt"

// ID identifies an entity as either pending or confirmed. The zero value is
// not a valid identity.
type ID struct {
	value     int64
	confirmed bool
	valid     bool
}

// Pending builds a local placeholder identity. Local values are negative and
// unique within an editor session.
func Pending(local int64) ID {
	return ID{value: local, valid: true}
}

// Confirmed builds an identity for an entity the backend already persisted.
func Confirmed(serverID int64) ID {
	return ID{value: serverID, confirmed: true, valid: true}
}

// IsValid reports whether the identity was built by Pending or Confirmed.
func (id ID) IsValid() bool { return id.valid }

// IsPending reports whether the entity only exists in the local session.
func (id ID) IsPending() bool { return id.valid && !id.confirmed }

// IsConfirmed reports whether the entity carries a server-assigned id.
func (id ID) IsConfirmed() bool { return id.valid && id.confirmed }

// Server returns the backend id and true when the identity is confirmed.
// Pending identities return (0, false) so a local placeholder can never be
// routed into a backend update or delete call.
func (id ID) Server() (int64, bool) {
	if !id.IsConfirmed() {
		return 0, false
	}
	return id.value, true
}

// Local returns the session-local value of a pending identity, or (0, false)
// for confirmed ones.
func (id ID) Local() (int64, bool) {
	if !id.IsPending() {
		return 0, false
	}
	return id.value, true
}

// Equal reports whether two identities name the same entity.
func (id ID) Equal(other ID) bool {
	return id.valid && other.valid && id.confirmed == other.confirmed && id.value == other.value
}

func (id ID) String() string {
	switch {
	case !id.valid:
		return "id(invalid)"
	case id.confirmed:
		return fmt.Sprintf("server:%d", id.value)
	default:
		return fmt.Sprintf("local:%d", id.value)
	}
}
