package entity

// EnemyState is the discrete behavior state of an enemy
type EnemyState int

const (
	StatePatrol EnemyState = iota
	StateChase
	StateAttack
	StateHurt
	StateDeath
)

// String returns the string representation of the state
func (s EnemyState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateHurt:
		return "hurt"
	case StateDeath:
		return "death"
	default:
		return "unknown"
	}
}

// ParseEnemyState is the inverse of String
func ParseEnemyState(s string) (EnemyState, bool) {
	for st := StatePatrol; st <= StateDeath; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// enemyTransitions lists the legal next states for each state.
// Death has no exits.
var enemyTransitions = map[EnemyState][]EnemyState{
	StatePatrol: {StateChase, StateHurt, StateDeath},
	StateChase:  {StatePatrol, StateAttack, StateHurt, StateDeath},
	StateAttack: {StateChase, StateHurt, StateDeath},
	StateHurt:   {StatePatrol, StateChase, StateHurt, StateDeath},
	StateDeath:  {},
}

// CanTransition reports whether from → to is a legal transition
func CanTransition(from, to EnemyState) bool {
	for _, s := range enemyTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Archetype selects an enemy's behavior set
type Archetype string

const (
	ArchetypeGrunt  Archetype = "grunt"
	ArchetypeArcher Archetype = "archer"
	ArchetypeCaster Archetype = "caster"
	ArchetypeToad   Archetype = "toad"
)

// DropEntry is one line of a drop table. Each entry rolls independently.
type DropEntry struct {
	ItemType string
	Chance   float64 // 0..1
	Amount   int
}

// Patrol is a simple back-and-forth route
type Patrol struct {
	Left, Right float64
	Speed       float64
	GroundY     float64 // feet clamp, 0 disables
}

// EnemyTuning holds the archetype parameters
type EnemyTuning struct {
	ChaseSpeed     float64
	SearchTime     float64 // seconds out of range before giving up the chase
	HurtTime       float64
	AttackTime     float64
	AttackCooldown float64
	DeathTime      float64 // fallback when no death clip is registered
	ContactDamage  int
	Knockback      float64

	// grunt
	LungeSpeed float64
	LungeHop   float64

	// archer
	PreferredMin float64
	PreferredMax float64

	// caster
	BurstCount    int
	BurstInterval float64
	MaxCharges    int
	RechargeTime  float64

	Projectile string
	Hazard     string
}

// Enemy represents an enemy entity
type Enemy struct {
	Entity

	Archetype Archetype
	State     EnemyState
	StateTime float64

	DetectionRange float64
	AttackRange    float64

	Drops  []DropEntry
	Patrol *Patrol
	Tuning EnemyTuning

	// Runtime
	Dir           float64 // patrol direction, -1 or 1
	SearchTimer   float64
	Cooldown      float64
	Charges       int
	RechargeTimer float64
	ShotsFired    int
	ShotTimer     float64
	Acted         bool // the attack action already fired in this attack state

	dropsClaimed  bool
	defeatClaimed bool
}

// NewEnemy creates a new enemy in the patrol state
func NewEnemy(archetype Archetype, x, y, w, h float64) *Enemy {
	e := &Enemy{
		Entity:    NewEntity(KindEnemy, x, y, w, h),
		Archetype: archetype,
		State:     StatePatrol,
		Dir:       -1,
	}
	e.FacingRight = false
	e.Solid = true
	return e
}

// SetState changes state if the transition is legal. Illegal or unknown
// targets leave the state unchanged and report false.
func (e *Enemy) SetState(s EnemyState) bool {
	if !CanTransition(e.State, s) {
		return false
	}
	e.State = s
	e.StateTime = 0
	e.Acted = false
	e.ShotsFired = 0
	e.ShotTimer = 0
	e.Anim.Restart(s.String())
	return true
}

// TakeDamage applies damage and moves to hurt or death.
func (e *Enemy) TakeDamage(amount int, fromX float64) bool {
	if !e.Active || e.State == StateDeath {
		return false
	}
	if !e.Health.TakeDamage(amount) {
		return false
	}

	if e.Tuning.Knockback > 0 {
		cx, _ := e.Center()
		dir := 1.0
		if fromX > cx {
			dir = -1.0
		}
		e.VX = dir * e.Tuning.Knockback
	}

	if e.Health.Dead() {
		e.SetState(StateDeath)
	} else {
		e.SetState(StateHurt)
	}
	return true
}

// IsAlive returns true if enemy can still act and be hit
func (e *Enemy) IsAlive() bool {
	return e.Active && e.State != StateDeath
}

// ClaimDrops returns true exactly once, the first time the drop table may run.
func (e *Enemy) ClaimDrops() bool {
	if e.dropsClaimed {
		return false
	}
	e.dropsClaimed = true
	return true
}

// ClaimDefeat returns true exactly once, the first time the defeat may be reported.
func (e *Enemy) ClaimDefeat() bool {
	if e.defeatClaimed {
		return false
	}
	e.defeatClaimed = true
	return true
}
