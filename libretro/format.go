package libretro

import (
	"fmt"
	"strings"

	zxcore "github.com/user-none/efuse/api"
)

// Frontend log levels, matching enum retro_log_level.
const (
	retroLogDebug = iota
	retroLogInfo
	retroLogWarn
	retroLogError
)

// retroLogLevel maps a log level onto the frontend's levels.
func retroLogLevel(level zxcore.LogLevel) int {
	switch level {
	case zxcore.LogDebug:
		return retroLogDebug
	case zxcore.LogInfo:
		return retroLogInfo
	case zxcore.LogWarn:
		return retroLogWarn
	default:
		return retroLogError
	}
}

// formatLog renders a message as one frontend log line.
func formatLog(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

// extensionList joins extensions into the frontend's pipe separated form.
func extensionList(exts []string) string {
	cleaned := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimPrefix(strings.ToLower(e), ".")
		if e != "" {
			cleaned = append(cleaned, e)
		}
	}
	return strings.Join(cleaned, "|")
}
