// Package types defines the Fleet and Table interfaces, the entity types
// behind each dashboard view (drones, alerts, reports, maintenance tasks,
// mission tasks, users, notifications), and the standard error values.
//
// See DESIGN.md for how the in-memory backends implement these interfaces.
package types
