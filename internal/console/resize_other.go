//go:build !unix

package console

import "os"

// Windows consoles have no resize signal; the width read at start is kept.
func notifyResize(chan<- os.Signal) bool {
	return false
}
