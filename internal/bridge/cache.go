// internal/bridge/cache.go
package bridge

// Cache keeps the last good snapshot of each kind.
// Single slot, last-write-wins, no expiry: a stale snapshot is served
// for as long as live reads keep failing. Clients prefer slightly-old
// data to no data.
//
// Not locked here; the owning Service serializes access.
type Cache struct {
	telemetry *TelemetrySnapshot
	session   *SessionSnapshot
}

// NewCache builds an empty cache.
func NewCache() *Cache { return &Cache{} }

// Telemetry returns the last good telemetry snapshot, if any.
func (c *Cache) Telemetry() (TelemetrySnapshot, bool) {
	if c.telemetry == nil {
		return TelemetrySnapshot{}, false
	}
	return *c.telemetry, true
}

// PutTelemetry replaces the retained telemetry snapshot.
func (c *Cache) PutTelemetry(s TelemetrySnapshot) {
	c.telemetry = &s
}

// Session returns the last good session snapshot, if any.
func (c *Cache) Session() (SessionSnapshot, bool) {
	if c.session == nil {
		return SessionSnapshot{}, false
	}
	return *c.session, true
}

// PutSession replaces the retained session snapshot.
func (c *Cache) PutSession(s SessionSnapshot) {
	c.session = &s
}
