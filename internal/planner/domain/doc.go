// Package domain holds the planning lifecycle state machine: sessions,
// participant preference collection, and plan approval/feedback cycles.
//
// The package is persistence- and transport-agnostic. It reads and writes
// through the Store interfaces, emits outbound messages through a Notifier,
// and treats plan synthesis as a pluggable PlanSynthesizer. Callers wire
// concrete implementations in internal/planner/app.
package domain
