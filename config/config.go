package config

// TickRate is the fixed simulation rate for both peers. All durations in this
// package are tick counts at this rate.
const TickRate = 60

// PlayerConfig contains all character movement and combat tuning.
type PlayerConfig struct {
	// Movement
	JumpSpeed    float64
	Acceleration float64
	MaxSpeed     float64
	CrouchSpeed  float64
	DashSpeed    float64
	DashTicks    int
	DashCooldown int

	// Physics
	Gravity      float64
	Friction     float64
	MaxFallSpeed float64

	// Combat
	Health       int
	InvulnTicks  int // post-hit invulnerability
	PickupRange  float64

	// Dimensions
	CollisionWidth  float64
	CollisionHeight float64
}

// BallConfig contains ball flight tuning per throw variant.
type BallConfig struct {
	Radius float64

	// Damage per throw variant
	BasicDamage    int
	ChargedDamage  int
	JumpDamage     int
	UltimateDamage int
	VolleyDamage   int

	// Speed per throw variant
	BasicSpeed    float64
	ChargedSpeed  float64
	JumpSpeed     float64
	UltimateSpeed float64
	VolleySpeed   float64

	ChargedThrowTicks int // throw button hold needed for a charged release

	ThrowArc     float64 // initial upward velocity component on a basic throw
	Gravity      float64 // applied while Free (and Thrown, unless a variant disables it)
	BounceDamp   float64 // velocity retained after striking a character uncaught
	FreeFriction float64 // ground friction while Free
}

// CatchConfig tunes the catch timing window.
type CatchConfig struct {
	CaptureRadius float64
	PerfectTicks  int // elapsed <= PerfectTicks  -> Perfect
	GoodTicks     int // elapsed <= GoodTicks     -> Good, beyond -> TooLate
	RetryCooldown int // ticks before another attempt may be graded
}

// ChargeConfig tunes the ability charge engine. Grant ordering is
// throw < dodge < catch; damage grants scale with damage taken.
type ChargeConfig struct {
	Required [3]float64 // per slot: Ultimate, Trick, Treat
	Cooldown [3]int     // per slot activation cooldown, ticks

	ThrowGrant     float64
	CatchGrant     float64
	DodgeGrant     float64
	PerfectBonus   float64 // extra on a Perfect catch
	DamageGrantPer float64 // charge per point of damage taken
}

// NetConfig tunes replication behavior.
type NetConfig struct {
	SnapshotInterval int     // ticks between published snapshots (~30 Hz)
	SnapThreshold    float64 // mirror position delta beyond which we snap
	InterpTicks      int     // ticks to blend a mirror toward its target
	EventBuffer      int     // buffered events per channel on the peer
}

// MatchConfig tunes round and match flow.
type MatchConfig struct {
	RoundsToWin        int
	CountdownTicks     int
	RoundOverTicks     int
	ResultTicks        int
	RespawnInvulnTicks int
}

var (
	Player PlayerConfig
	Ball   BallConfig
	Catch  CatchConfig
	Charge ChargeConfig
	Net    NetConfig
	Match  MatchConfig
)

func init() {
	Player = PlayerConfig{
		JumpSpeed:    13.0,
		Acceleration: 0.7,
		MaxSpeed:     5.5,
		CrouchSpeed:  2.0,
		DashSpeed:    11.0,
		DashTicks:    10,
		DashCooldown: 45,

		Gravity:      0.65,
		Friction:     0.5,
		MaxFallSpeed: 12.0,

		Health:      100,
		InvulnTicks: 48,
		PickupRange: 28.0,

		CollisionWidth:  24,
		CollisionHeight: 40,
	}

	Ball = BallConfig{
		Radius: 8,

		BasicDamage:    10,
		ChargedDamage:  16,
		JumpDamage:     14,
		UltimateDamage: 30,
		VolleyDamage:   8,

		BasicSpeed:    9.0,
		ChargedSpeed:  12.0,
		JumpSpeed:     10.0,
		UltimateSpeed: 15.0,
		VolleySpeed:   10.0,

		ChargedThrowTicks: 30,

		ThrowArc:     1.5,
		Gravity:      0.35,
		BounceDamp:   0.4,
		FreeFriction: 0.3,
	}

	Catch = CatchConfig{
		CaptureRadius: 42.0,
		PerfectTicks:  60,  // 1.0s
		GoodTicks:     120, // 2.0s
		RetryCooldown: 12,
	}

	Charge = ChargeConfig{
		Required: [3]float64{100, 100, 100},
		Cooldown: [3]int{10 * TickRate, 8 * TickRate, 8 * TickRate},

		ThrowGrant:     8,
		CatchGrant:     20,
		DodgeGrant:     12,
		PerfectBonus:   10,
		DamageGrantPer: 0.6,
	}

	Net = NetConfig{
		SnapshotInterval: 2, // 30 Hz at a 60 Hz tick
		SnapThreshold:    96.0,
		InterpTicks:      4,
		EventBuffer:      16,
	}

	Match = MatchConfig{
		RoundsToWin:        3,
		CountdownTicks:     3 * TickRate,
		RoundOverTicks:     2 * TickRate,
		ResultTicks:        5 * TickRate,
		RespawnInvulnTicks: 90,
	}
}
