// internal/session/conditions.go
package session

// Track wetness scale.
// These codes come from the simulator and MUST NOT be remapped.

// ---- WETNESS CODES ----

// WetnessUnknown represents an unreported surface state.
const WetnessUnknown = 0

// WetnessDry represents a fully dry surface.
const WetnessDry = 1

// WetnessMostlyDry represents a drying surface.
const WetnessMostlyDry = 2

// WetnessVeryLightlyWet is the first wet classification.
const WetnessVeryLightlyWet = 3

// WetnessLightlyWet represents light standing moisture.
const WetnessLightlyWet = 4

// WetnessModeratelyWet represents steady moisture.
const WetnessModeratelyWet = 5

// WetnessVeryWet represents heavy moisture.
const WetnessVeryWet = 6

// WetnessExtremelyWet is the top of the scale.
const WetnessExtremelyWet = 7

// ---- CLASSIFICATION ----

// Condition labels reported to clients.
const (
	ConditionDry = "dry"
	ConditionWet = "wet"
)

// TrackCondition classifies a wetness code as "dry" or "wet".
// Anything from very_lightly_wet upward counts as wet.
func TrackCondition(code int) string {
	if code >= WetnessVeryLightlyWet {
		return ConditionWet
	}
	return ConditionDry
}
