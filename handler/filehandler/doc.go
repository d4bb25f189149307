// Package filehandler provides a file sink with daily rotation.
//
// Records are appended to {dir}/{name}.log (dir defaults to ./logs). The
// first write of a new calendar day closes the live file, renames it to
// {dir}/{name}-{YYYY-MM-DD}.log using the date of the day that just ended,
// and opens a fresh live file. If an archive of that date already exists,
// a numeric suffix is added rather than overwriting it.
//
// The directory and file are created lazily. When either cannot be
// created, the batch is dropped, the error is counted in Stats, and the
// next Process retries. After every drained batch the file is synced.
package filehandler
