// Package userdata supplies engines with optional per-slot data blobs, such
// as user wavetables. Data is only read when a voice reloads, never while it
// renders a block.
package userdata

// SlotSize is the largest blob a slot may hold.
const SlotSize = 0x1000

// MaxSlots is the number of slots; slot i belongs to engine i.
const MaxSlots = 24

// Provider returns the data for a slot, or nil when the slot is empty.
type Provider interface {
	Slot(slot int) []byte
}

// UserData wraps an optional Provider. The zero value has no provider and
// reports every slot as empty.
type UserData struct {
	provider Provider
}

// New wraps p, which may be nil.
func New(p Provider) UserData {
	return UserData{provider: p}
}

// Slot returns the data for slot, or nil when there is no provider or the
// slot is out of range.
func (u UserData) Slot(slot int) []byte {
	if u.provider == nil || slot < 0 || slot >= MaxSlots {
		return nil
	}
	return u.provider.Slot(slot)
}

// Static is an in-memory Provider keyed by slot index.
type Static map[int][]byte

// Slot implements Provider.
func (s Static) Slot(slot int) []byte {
	return s[slot]
}
