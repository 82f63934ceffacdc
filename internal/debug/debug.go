// Package debug prints diagnostic traces to stderr when SHIPIT_DEBUG=1.
package debug

import (
	"fmt"
	"io"
	"os"
	"time"
)

// out is swappable for tests.
var out io.Writer = os.Stderr

// Logf writes one timestamped trace line. The environment is checked per
// call so traces can be toggled without re-resolving any state.
func Logf(format string, args ...any) {
	if os.Getenv("SHIPIT_DEBUG") != "1" {
		return
	}
	fmt.Fprintf(out, "shipit %s %s\n",
		time.Now().Format("15:04:05.000"),
		fmt.Sprintf(format, args...))
}
