package logger

import (
	"github.com/philipp01105/drainlog/core"
)

// Level shorthands for Printf

// Emergencyf logs at EmergencyLevel
func (m *Manager) Emergencyf(format string, args ...core.Arg) {
	m.Printf(core.EmergencyLevel, format, args...)
}

// Alertf logs at AlertLevel
func (m *Manager) Alertf(format string, args ...core.Arg) {
	m.Printf(core.AlertLevel, format, args...)
}

// Criticalf logs at CriticalLevel
func (m *Manager) Criticalf(format string, args ...core.Arg) {
	m.Printf(core.CriticalLevel, format, args...)
}

// Errorf logs at ErrorLevel
func (m *Manager) Errorf(format string, args ...core.Arg) {
	m.Printf(core.ErrorLevel, format, args...)
}

// Warningf logs at WarningLevel
func (m *Manager) Warningf(format string, args ...core.Arg) {
	m.Printf(core.WarningLevel, format, args...)
}

// Noticef logs at NoticeLevel
func (m *Manager) Noticef(format string, args ...core.Arg) {
	m.Printf(core.NoticeLevel, format, args...)
}

// Infof logs at InfoLevel
func (m *Manager) Infof(format string, args ...core.Arg) {
	m.Printf(core.InfoLevel, format, args...)
}

// Debugf logs at DebugLevel
func (m *Manager) Debugf(format string, args ...core.Arg) {
	m.Printf(core.DebugLevel, format, args...)
}
