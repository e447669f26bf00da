// Package model implements the revisioned feature model.
//
// The record layer is a containment hierarchy: a FeatureStore holds FeatureCollections,
// collections hold Features, features hold TopLevelProperties and properties hold a vector
// of property values (see package property).
//
// Every node is a revisioned owner. Reading never copies; each edit produces new revisions
// for the edited node and its ancestors only, then swaps them in at once. Former root revisions
// remain valid snapshots of the whole graph.
//
// A Model connects a store to subscribers: each committed edit within the store emits an Event,
// unless a NotificationGuard is active, in which case one consolidated event
// is emitted when the outermost guard is released.
//
// Models are not safe for concurrent use.
package model
