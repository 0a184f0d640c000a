//go:build unix

package console

import (
	"os"
	"os/signal"
	"syscall"
)

func notifyResize(ch chan<- os.Signal) bool {
	signal.Notify(ch, syscall.SIGWINCH)
	return true
}
