// Package property implements revisioned property values.
//
// Property values form their own containment hierarchy: time periods contain time instants,
// constant values and time samples contain other property values, irregular samplings contain
// a vector of time samples. Every value is a revisioned owner: editing a nested value bubbles
// up through its containers, and further up to the feature property holding it, if any.
package property
