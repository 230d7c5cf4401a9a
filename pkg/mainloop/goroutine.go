package mainloop

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the current goroutine's id from the runtime stack
// header ("goroutine N [running]: ..."). The id is only used as an opaque
// identity token for affinity checks; nothing is keyed on it long-term.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
