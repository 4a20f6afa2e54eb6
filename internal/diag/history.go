// Package diag captures recent wire traffic for post-mortem dumps.
package diag

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Direction marks which way a recorded frame traveled.
type Direction uint8

const (
	Sent Direction = iota
	Received
)

func (d Direction) String() string {
	if d == Sent {
		return "sent"
	}
	return "received"
}

// Record is one captured frame.
type Record struct {
	Time      time.Time
	Direction Direction
	Header    uint16
	Name      string
	Data      []byte
	// Packet holds the decoded form for received frames, when decoding
	// succeeded.
	Packet any
}

// History is a fixed-size ring of recent frames. Keepalive frames are
// not recorded; they would crowd out everything else.
type History struct {
	mu      sync.Mutex
	records []Record
	next    int
	full    bool
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = 64
	}
	return &History{records: make([]Record, size)}
}

// Push records a frame, evicting the oldest when the ring is full.
func (h *History) Push(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[h.next] = r
	h.next++
	if h.next == len(h.records) {
		h.next = 0
		h.full = true
	}
}

// Snapshot returns the retained records, oldest first.
func (h *History) Snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Record
	if h.full {
		out = append(out, h.records[h.next:]...)
	}
	out = append(out, h.records[:h.next]...)
	return out
}

// Dump writes the retained records to w, decoded packets included.
func (h *History) Dump(w io.Writer) {
	for _, r := range h.Snapshot() {
		fmt.Fprintf(w, "%s %s 0x%04x %s (%d bytes)\n",
			r.Time.Format("15:04:05.000"), r.Direction, r.Header, r.Name, len(r.Data))
		if r.Packet != nil {
			spew.Fdump(w, r.Packet)
		} else {
			spew.Fdump(w, r.Data)
		}
	}
}
