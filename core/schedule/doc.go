// Package schedule builds conflict-free weekly schedules.
//
// Offering meetings are filtered (requested courses, open seats, campus),
// grouped into sections by (course, section ID), combined by a Generator
// into one-section-per-course schedules without overlapping meetings and
// finally restricted to a daytime window. Planner wires these steps
// together and reports the distinct failure modes as sentinel errors.
package schedule
