package conversation

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// Printer is the styled output the notifier writes to. display.UI
// satisfies it.
type Printer interface {
	PrintChat(text string)
	PrintUrgent(text string)
}

// stdoutPrinter is used before the UI exists and in non-interactive runs.
type stdoutPrinter struct{}

func (stdoutPrinter) PrintChat(text string)   { fmt.Println("  " + text) }
func (stdoutPrinter) PrintUrgent(text string) { fmt.Println("  ! " + text) }

// CLINotifier surfaces timer alerts and advisories in the terminal.
type CLINotifier struct {
	log *logger.Logger
	out Printer
}

// NewCLINotifier creates a terminal notifier. If out is nil, plain stdout
// is used.
func NewCLINotifier(log *logger.Logger, out Printer) *CLINotifier {
	if out == nil {
		out = stdoutPrinter{}
	}
	return &CLINotifier{log: log, out: out}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.out.PrintChat(message)
	return nil
}

// NotifyUrgent prints an urgent notification.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.out.PrintUrgent(message)
	return nil
}
