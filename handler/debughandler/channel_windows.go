//go:build windows

package debughandler

import (
	"bytes"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procIsDebuggerPresent  = kernel32.NewProc("IsDebuggerPresent")
	procOutputDebugStringW = kernel32.NewProc("OutputDebugStringW")
)

type windowsChannel struct{}

func defaultChannel() Channel {
	return windowsChannel{}
}

// Present calls IsDebuggerPresent
func (windowsChannel) Present() bool {
	if procIsDebuggerPresent.Find() != nil {
		return false
	}
	r, _, _ := procIsDebuggerPresent.Call()
	return r != 0
}

// Write sends p through OutputDebugStringW. Embedded NULs would end the
// string early, so they are replaced.
func (windowsChannel) Write(p []byte) {
	if procOutputDebugStringW.Find() != nil {
		return
	}
	s := string(bytes.ReplaceAll(p, []byte{0}, []byte{' '}))
	ptr, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return
	}
	_, _, _ = procOutputDebugStringW.Call(uintptr(unsafe.Pointer(ptr)))
}
