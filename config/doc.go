// Package config builds a logger.Manager from a YAML or JSON file and keeps
// it in step with later edits of that file.
//
// Load and Parse decode a document with koanf. Build creates the Manager and
// its sinks:
//
//	cfg, err := config.Load("drainlog.yaml")
//	if err != nil {
//		return err
//	}
//	m, err := cfg.Build()
//
// Watch follows the file with fsnotify and re-applies the global level, the
// prefix options and every sink's level on each change.
package config
