package database

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gamesmanone/core/internal/types"
)

// defaultProbeCacheTiers bounds how many tiers' decoded blocks a single
// probe keeps resident (spec §4.6 "a probe is permitted to cache the
// last-touched tier's decoded block"; one is the literal reading, but a
// small LRU of recent tiers avoids thrashing when a query alternates
// between two or three adjacent tiers).
const defaultProbeCacheTiers = 4

// diskProber is the Probe implementation backed by Disk, with an LRU
// cache of decoded tier blocks grounded on the teacher's CachedProber
// (internal/tablebase/cached.go), generalized from a single flat
// position->result cache to one keyed by tier (since an entire tier's
// record vector is the natural decoded unit here).
type diskProber struct {
	disk  *Disk
	cache *lru.Cache[types.Tier, []types.Record]
}

// NewProbe allocates a per-caller probe handle (spec §4.6
// "probe_init"). Close releases it; the Probe interface models
// probe_destroy.
func (d *Disk) NewProbe() (Probe, error) {
	cache, err := lru.New[types.Tier, []types.Record](defaultProbeCacheTiers)
	if err != nil {
		return nil, err
	}
	return &diskProber{disk: d, cache: cache}, nil
}

func (p *diskProber) recordsFor(t types.Tier) ([]types.Record, bool) {
	if recs, ok := p.cache.Get(t); ok {
		return recs, true
	}
	recs, err := p.disk.LoadTier(t)
	if err != nil {
		return nil, false
	}
	p.cache.Add(t, recs)
	return recs, true
}

// Value returns tp's stored value, or the Undecided sentinel on a miss
// (spec §4.6 "probe_value... return the stored value... or sentinels
// on miss").
func (p *diskProber) Value(tp types.TierPosition) types.Value {
	recs, ok := p.recordsFor(tp.Tier)
	if !ok || int64(tp.Position) >= int64(len(recs)) {
		return probeMiss.Value
	}
	return recs[tp.Position].Value
}

// Remoteness returns tp's stored remoteness, or 0 on a miss.
func (p *diskProber) Remoteness(tp types.TierPosition) types.Remoteness {
	recs, ok := p.recordsFor(tp.Tier)
	if !ok || int64(tp.Position) >= int64(len(recs)) {
		return probeMiss.Remoteness
	}
	return recs[tp.Position].Remoteness
}

// Close releases the probe's decoded-block cache.
func (p *diskProber) Close() {
	p.cache.Purge()
}
