// Package core defines the shared types used across drainlog.
//
// It provides the Level type, the eight syslog severity tiers used by every
// gate in the framework, and the Arg type, a tagged value that carries one
// positional argument of a printf-style call without boxing it in an
// interface.
//
// Levels are ordered by verbosity: EmergencyLevel is the smallest value and
// DebugLevel the largest. A gate configured at level L accepts a record at
// level R when L >= R, so raising a gate makes it more permissive.
//
// Arg keeps integers, floats and strings in dedicated members. Values that
// know how to render themselves (multi-line records, domain structs)
// implement Appender and are passed with Custom; the formatter appends their
// rendering verbatim. Any exists for bridges that only have an interface{}
// and classifies it into the narrowest kind.
package core
