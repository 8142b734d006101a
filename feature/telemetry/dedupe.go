package telemetry

import (
	"sort"

	"go.uber.org/zap"
)

// Observation is one (device, connector count) pair derived from a status
// topic. Observations only live for the duration of a run.
type Observation struct {
	DeviceID   string
	Connectors int
}

// Observations converts the per-topic counts gathered by the collector into
// per-device observations. Topics the device id cannot be extracted from are
// logged and skipped.
func Observations(counts map[string]int, log *zap.Logger) []Observation {
	obs := make([]Observation, 0, len(counts))
	for topic, count := range counts {
		deviceID, err := DeviceID(topic)
		if err != nil {
			log.Warn("skipping topic without device id", zap.String("topic", topic), zap.Error(err))
			continue
		}
		obs = append(obs, Observation{DeviceID: deviceID, Connectors: count})
	}
	return Dedupe(obs)
}

// Dedupe collapses observations into one per device, keeping the highest
// connector count reported for each. A station may publish under more than
// one topic variant; preferring the maximum means the reconciler can only
// under-report a deficit, never miss connectors a topic announced.
// The result is sorted by device id so runs process devices in a stable order.
func Dedupe(obs []Observation) []Observation {
	counts := make(map[string]int, len(obs))
	for _, o := range obs {
		if current, seen := counts[o.DeviceID]; !seen || o.Connectors > current {
			counts[o.DeviceID] = o.Connectors
		}
	}

	out := make([]Observation, 0, len(counts))
	for deviceID, count := range counts {
		out = append(out, Observation{DeviceID: deviceID, Connectors: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}
