// Package rollinghandler provides a file sink rotated by size, backed by
// gopkg.in/natefinch/lumberjack.v2. Rolled files are named after the live
// file with a timestamp, optionally gzipped, and pruned by count and age.
//
// Use it when the daily files of filehandler grow too large, or when a
// retention policy is required.
package rollinghandler
