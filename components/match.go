package components

import (
	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// PlayerScore tracks one character's match statistics.
type PlayerScore struct {
	RoundWins   int
	DamageDealt int
	DamageTaken int
	Catches     int
	Throws      int
}

// MatchData stores the current match state and scores.
// This is a singleton component - only one match exists at a time.
type MatchData struct {
	Tick           int64 // simulation ticks since match creation
	State          netconfig.MatchStateID
	Timer          int // countdown / round-over / result ticks remaining
	Round          int
	CountdownValue int // 3, 2, 1; -1 means GO

	Scores      [2]PlayerScore // indexed by side
	WinnerSide  int            // -1 until decided
	RoundWinner int            // -1 until the current round resolves
}

var Match = donburi.NewComponentType[MatchData]()

// NewMatchData returns match state in the waiting phase.
func NewMatchData() MatchData {
	return MatchData{
		State:       netconfig.MatchStateWaiting,
		Round:       1,
		WinnerSide:  -1,
		RoundWinner: -1,
	}
}
