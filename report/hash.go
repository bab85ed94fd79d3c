package report

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
)

// Hash calculates a hash of the report's rankings and totals using the
// provided hash function.
//
// Two reports over the same ingested data hash identically: the GeneratedAt
// field is ignored. The dashboard uses this to skip redraws when the input
// file changed on disk but the rankings did not.
func (r *Report) Hash(h hash.Hash) {
	s := hasher{h: h}
	s.number(int64(r.K))
	s.number(int64(r.RowsSeen))
	s.number(int64(r.RowsSkipped))
	s.number(int64(r.Trips))
	s.number(int64(r.Zones))
	s.number(int64(len(r.TopZones)))
	for i := range r.TopZones {
		s.string(r.TopZones[i].Zone)
		s.number(int64(r.TopZones[i].Count))
	}
	s.number(int64(len(r.TopSlots)))
	for i := range r.TopSlots {
		s.string(r.TopSlots[i].Zone)
		s.number(int64(r.TopSlots[i].Hour))
		s.number(int64(r.TopSlots[i].Count))
	}
	s.flush()
}

type hasher struct {
	h hash.Hash
	b bytes.Buffer
}

func (h *hasher) flush() {
	h.h.Write(h.b.Bytes())
	h.b.Reset()
}

func (h *hasher) string(s string) {
	h.number(uint64(len(s)))
	h.flush()
	h.h.Write([]byte(s))
}

func (h *hasher) number(a any) {
	err := binary.Write(&h.b, binary.LittleEndian, a)
	if err != nil {
		panic(fmt.Sprintf("failed to hash %T", a))
	}
}
