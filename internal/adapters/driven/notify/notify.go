// Package notify provides Notifier implementations for non-interactive
// surfaces. The TUI status bar is its own notifier.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// Ensure notifiers implement the interface.
var (
	_ driven.Notifier = (*WriterNotifier)(nil)
	_ driven.Notifier = (*LogNotifier)(nil)
)

// WriterNotifier writes notices as "level: message" lines.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a notifier writing to w, usually stderr.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify implements driven.Notifier.
func (n *WriterNotifier) Notify(notice domain.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "%s: %s\n", notice.Level, notice.Message)
}

// LogNotifier forwards notices to the process logger.
// Error and warn notices are logged at warn, info at info.
type LogNotifier struct {
	log logger.Scoped
}

// NewLogNotifier creates a notifier logging under scope.
func NewLogNotifier(scope string) *LogNotifier {
	return &LogNotifier{log: logger.For(scope)}
}

// Notify implements driven.Notifier.
func (n *LogNotifier) Notify(notice domain.Notice) {
	switch notice.Level {
	case domain.NoticeInfo:
		n.log.Info("%s", notice.Message)
	default:
		n.log.Warn("%s", notice.Message)
	}
}
