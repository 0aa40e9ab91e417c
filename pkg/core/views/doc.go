// Package views derives the dashboard's aggregates and slot lookups from flat
// appointment and email lists.
//
// Every function is pure: the same input slice and the same reference instant
// always give the same result. Calendar-day and hour-of-day comparisons are made
// in the time zone carried by the reference instant, so callers pick the
// viewer's zone by passing e.g. now.In(loc).
package views
