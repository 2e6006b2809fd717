// Package guard flips the runtime into test mode when imported, so tests can
// never trigger real startup side effects.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("VATLENS_TEST_MODE") == "" {
			_ = os.Setenv("VATLENS_TEST_MODE", "1")
		}
	})
}
