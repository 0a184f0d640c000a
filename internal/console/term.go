package console

import (
	"os"
	"os/signal"

	"golang.org/x/term"
)

// columns is the last known terminal width, 0 when unknown.
func (s *Shell) columns() int {
	return int(s.cols.Load())
}

func (s *Shell) terminalFd() (int, bool) {
	f, ok := s.out.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

func (s *Shell) refreshColumns(fd int) {
	if w, _, err := term.GetSize(fd); err == nil {
		s.cols.Store(int64(w))
	}
}

// watchResize tracks the terminal width until the returned func is called.
func (s *Shell) watchResize() (stop func()) {
	if s.fixedWidth {
		return func() {}
	}
	fd, ok := s.terminalFd()
	if !ok {
		return func() {}
	}
	s.refreshColumns(fd)

	sig := make(chan os.Signal, 1)
	if !notifyResize(sig) {
		return func() {}
	}
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-sig:
				s.refreshColumns(fd)
			case <-quit:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sig)
		close(quit)
	}
}
