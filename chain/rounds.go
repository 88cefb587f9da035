package chain

import (
	"math"
	"time"
)

// CurrentRound returns the round emitted most recently before now, round 1
// being emitted at the genesis time. Before genesis there is no round and it
// returns 0.
func CurrentRound(now int64, period time.Duration, genesis int64) uint64 {
	if now < genesis {
		return 0
	}
	return uint64(math.Floor(float64(now-genesis)/period.Seconds())) + 1
}

// TimeOfRound returns the unix time at which the given round is emitted.
func TimeOfRound(period time.Duration, genesis int64, round uint64) int64 {
	if round == 0 {
		return genesis
	}
	return genesis + int64(float64(round-1)*period.Seconds())
}

// RoundAt returns the round of this chain emitted most recently before t.
func (i *Info) RoundAt(t time.Time) uint64 {
	return CurrentRound(t.Unix(), i.Period, i.GenesisTime)
}

// TimeOfRound returns the wall clock time at which this chain emits the
// given round.
func (i *Info) TimeOfRound(round uint64) time.Time {
	return time.Unix(TimeOfRound(i.Period, i.GenesisTime, round), 0)
}
