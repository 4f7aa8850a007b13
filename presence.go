package varskema

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen        Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                          // Field value was null.
	PresenceAutoApplied                      // Value was supplied by the engine (auto-managed field).
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the decoded record along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}
