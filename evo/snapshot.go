package evo

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/Hoffee-Toffee/Progeny/block"
)

// ---------------------------------------------------------------------------
// Snapshots: CBOR population checkpoints
// ---------------------------------------------------------------------------

// cborEncMode uses canonical encoding options so equal snapshots encode to
// equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("evo: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot is one generation's population in portable form: enough to
// inspect, compare, or reseed a run from the archived state.
type Snapshot struct {
	RunID      string              `json:"run_id"`
	Problem    string              `json:"problem"`
	Trial      int                 `json:"trial"`
	Generation int                 `json:"generation"`
	Programs   []*block.ProgramDoc `json:"programs"`
}

// NewSnapshot captures a population. Programs are encoded to their document
// form, so the snapshot shares no structure with the live population.
func NewSnapshot(runID, problemName string, trial, generation int, population []*block.Program) *Snapshot {
	s := &Snapshot{
		RunID:      runID,
		Problem:    problemName,
		Trial:      trial,
		Generation: generation,
		Programs:   make([]*block.ProgramDoc, len(population)),
	}
	for i, p := range population {
		s.Programs[i] = block.Encode(p)
	}
	return s
}

// Restore decodes the snapshot's programs back into live block trees.
func (s *Snapshot) Restore() ([]*block.Program, error) {
	programs := make([]*block.Program, len(s.Programs))
	for i, doc := range s.Programs {
		p, err := block.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("evo: restore snapshot program %d: %w", i, err)
		}
		programs[i] = p
	}
	return programs, nil
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("evo: unmarshal snapshot: %w", err)
	}
	return &s, nil
}
