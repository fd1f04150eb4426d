package hooks

import (
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

// contextHook adds the file:line of the logging call site to every entry.
type contextHook struct {
	// Path prefix to trim from file names, usually the module name.
	trimPrefix string
}

func NewContextHook() contextHook {
	return contextHook{trimPrefix: "fssnap/"}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	if line := hook.callSite(string(debug.Stack())); line != "" {
		entry.Data["file:line"] = line
	}
	return nil
}

// callSite finds the first source line below logrus' own frames in a stack dump.
func (hook contextHook) callSite(stack string) string {
	lines := strings.Split(stack, "\n")
	inLogrus := false
	// After the "goroutine" header, frames come in pairs: function, then file:line.
	for i := 1; i+1 < len(lines); i += 2 {
		if strings.Contains(lines[i], "sirupsen/logrus") {
			inLogrus = true
			continue
		}
		if !inLogrus {
			continue
		}
		fileLine := strings.TrimSpace(lines[i+1])
		if idx := strings.LastIndex(fileLine, hook.trimPrefix); idx >= 0 {
			fileLine = fileLine[idx+len(hook.trimPrefix):]
		}
		if sp := strings.LastIndex(fileLine, " +0x"); sp >= 0 {
			fileLine = fileLine[:sp]
		}
		return fileLine
	}
	return ""
}
