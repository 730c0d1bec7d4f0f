package ledger

import (
	"bytes"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stackmint-labs/go-stackmint/inter"
)

// Snapshot is the RLP-encodable image of a Store. Maps are flattened into
// slices with a canonical order so the same state always encodes to the
// same bytes. Token balances are not included: the token ledger is an
// external collaborator and is persisted by its owner.
type Snapshot struct {
	Registered []common.Address

	HasActivation bool
	Activation    inter.ActivationRecord

	Blocks    []BlockSnapshot
	Cycles    []inter.RewardCycleRecord
	Positions []inter.StackerPosition
	Claims    []inter.ClaimRecord
}

// BlockSnapshot pairs a block height with its ordered commitment list.
type BlockSnapshot struct {
	Height idx.Block
	List   inter.MinersList
}

// Snapshot flattens the store into its canonical snapshot form.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{}

	for addr := range s.registered {
		snap.Registered = append(snap.Registered, addr)
	}
	sort.Slice(snap.Registered, func(i, j int) bool {
		return bytes.Compare(snap.Registered[i][:], snap.Registered[j][:]) < 0
	})

	if s.activation != nil {
		snap.HasActivation = true
		snap.Activation = *s.activation
	}

	for height, list := range s.miners {
		snap.Blocks = append(snap.Blocks, BlockSnapshot{Height: height, List: list})
	}
	sort.Slice(snap.Blocks, func(i, j int) bool {
		return snap.Blocks[i].Height < snap.Blocks[j].Height
	})

	for _, rec := range s.cycles {
		snap.Cycles = append(snap.Cycles, *rec)
	}
	sort.Slice(snap.Cycles, func(i, j int) bool {
		return snap.Cycles[i].Cycle < snap.Cycles[j].Cycle
	})

	for _, positions := range s.positions {
		snap.Positions = append(snap.Positions, positions...)
	}
	sort.Slice(snap.Positions, func(i, j int) bool {
		a, b := snap.Positions[i], snap.Positions[j]
		if cmp := bytes.Compare(a.Stacker[:], b.Stacker[:]); cmp != 0 {
			return cmp < 0
		}
		return a.StartCycle < b.StartCycle
	})

	for _, rec := range s.claims {
		snap.Claims = append(snap.Claims, *rec)
	}
	sort.Slice(snap.Claims, func(i, j int) bool {
		a, b := snap.Claims[i], snap.Claims[j]
		if cmp := bytes.Compare(a.Stacker[:], b.Stacker[:]); cmp != 0 {
			return cmp < 0
		}
		return a.Cycle < b.Cycle
	})

	return snap
}

// RestoreSnapshot replaces the store's state with the snapshot's.
// The token-ledger binding is left untouched.
func (s *Store) RestoreSnapshot(snap Snapshot) {
	s.registered = make(map[common.Address]bool, len(snap.Registered))
	for _, addr := range snap.Registered {
		s.registered[addr] = true
	}

	s.activation = nil
	if snap.HasActivation {
		rec := snap.Activation
		s.activation = &rec
	}

	s.miners = make(map[idx.Block]inter.MinersList, len(snap.Blocks))
	for _, b := range snap.Blocks {
		s.miners[b.Height] = b.List
	}

	s.cycles = make(map[idx.Epoch]*inter.RewardCycleRecord, len(snap.Cycles))
	for _, rec := range snap.Cycles {
		cpy := rec
		s.cycles[rec.Cycle] = &cpy
	}

	s.positions = make(map[common.Address][]inter.StackerPosition)
	for _, p := range snap.Positions {
		s.positions[p.Stacker] = append(s.positions[p.Stacker], p)
	}

	s.claims = make(map[claimKey]*inter.ClaimRecord, len(snap.Claims))
	for _, rec := range snap.Claims {
		cpy := rec
		s.claims[claimKey{rec.Stacker, rec.Cycle}] = &cpy
	}
}

// EncodeSnapshot serializes the store state with RLP.
func (s *Store) EncodeSnapshot() ([]byte, error) {
	return rlp.EncodeToBytes(s.Snapshot())
}

// DecodeSnapshot parses an RLP snapshot and restores it into the store.
func (s *Store) DecodeSnapshot(raw []byte) error {
	var snap Snapshot
	if err := rlp.DecodeBytes(raw, &snap); err != nil {
		return err
	}
	s.RestoreSnapshot(snap)
	return nil
}
