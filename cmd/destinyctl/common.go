package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lieuweberg/bungie-go"
	"github.com/pkg/errors"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// printEnvelope prints the status line, a throttle hint when there is one and
// the payload. A logical error is returned so the command exits non-zero.
func printEnvelope[T any](out io.Writer, env *bungie.Envelope[T]) error {
	fmt.Fprintf(out, "Status:   %s (%d)\n", env.ErrorStatus, env.ErrorCode)
	if d := env.ShouldThrottle(); d > 0 {
		fmt.Fprintf(out, "Throttle: wait %s before the next call\n", d)
	}
	if !env.IsSuccess() {
		fmt.Fprintf(out, "Message:  %s\n", env.Message)
		return env.Err()
	}
	return printJSON(out, env.Response)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "printing response")
}

func parseHash(s string) (uint32, error) {
	h, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		// hashes copied out of the world database are signed
		i, ierr := strconv.ParseInt(s, 10, 32)
		if ierr != nil {
			return 0, errors.Errorf("invalid hash %q: expected a 32-bit number", s)
		}
		return uint32(int32(i)), nil
	}
	return uint32(h), nil
}
