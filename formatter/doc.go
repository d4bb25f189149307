// Package formatter turns a level, a printf-style format and a typed
// argument list into one log line.
//
// A line is a prefix followed by a body. The prefix is assembled by
// AppendPrefix from an OptionSet: date (or day of month), time, OS thread
// id and level tag, in that order, each followed by one space. The body is
// produced by Expand, which understands C conversion syntax (flags, width,
// precision and length modifiers followed by one of d i u o x X f F e E g
// G a A c s p n) and maps each conversion onto Go's fmt for the Arg kind at
// hand.
//
// Lines are bounded. Expand stops writing once the configured limit is
// reached and cuts the result to the limit, so a runaway argument costs at
// most DefaultMaxLineSize bytes. An unrecognised conversion terminates the
// body instead of being printed.
//
// Scratch buffers come from a pool (GetBuffer/PutBuffer). Buffers larger
// than 64 KiB are not returned to the pool to prevent a single large line
// from permanently inflating memory usage.
package formatter
