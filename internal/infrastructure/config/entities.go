package config

// EntitiesConfig is the root config for entities.yaml
type EntitiesConfig struct {
	Player      PlayerConfig                `yaml:"player"`
	Enemies     map[string]EnemyConfig      `yaml:"enemies"`
	Projectiles map[string]ProjectileConfig `yaml:"projectiles"`
	Items       map[string]ItemConfig       `yaml:"items"`
	Hazards     map[string]HazardConfig     `yaml:"hazards"`
	NPCs        map[string]NPCConfig        `yaml:"npcs"`
	Flag        FlagConfig                  `yaml:"flag"`
	Layers      []LayerConfig               `yaml:"layers"`
	Audio       map[string]SoundConfig      `yaml:"audio"`
}

// SpriteConfig describes the frame size and clips of a sprite sheet.
// Color is the placeholder used when the sheet is unavailable.
type SpriteConfig struct {
	Sheet      string                     `yaml:"sheet"`
	Width      float64                    `yaml:"width"`
	Height     float64                    `yaml:"height"`
	Color      string                     `yaml:"color"`
	Animations map[string]AnimationConfig `yaml:"animations"`
}

type AnimationConfig struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// Rect is a collision box relative to the sprite frame
type Rect struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

type PlayerConfig struct {
	Sprite    SpriteConfig `yaml:"sprite"`
	Hitbox    Rect         `yaml:"hitbox"`
	MaxHealth int          `yaml:"max_health"`
	MaxAmmo   int          `yaml:"max_ammo"`
	StartAmmo int          `yaml:"start_ammo"`
	Throw     string       `yaml:"throw"` // projectile id
	Friction  float64      `yaml:"friction"`
}

type EnemyConfig struct {
	Archetype string       `yaml:"archetype"`
	Sprite    SpriteConfig `yaml:"sprite"`
	Hitbox    Rect         `yaml:"hitbox"`

	MaxHealth      int     `yaml:"max_health"`
	IFrames        float64 `yaml:"iframes"` // invulnerability after a hit, seconds
	ContactDamage  int     `yaml:"contact_damage"`
	Gravity        bool    `yaml:"gravity"`
	DetectionRange float64 `yaml:"detection_range"`
	AttackRange    float64 `yaml:"attack_range"`
	PatrolSpeed    float64 `yaml:"patrol_speed"`
	PatrolDistance float64 `yaml:"patrol_distance"`
	ChaseSpeed     float64 `yaml:"chase_speed"`
	SearchTime     float64 `yaml:"search_time"`
	HurtTime       float64 `yaml:"hurt_time"`
	AttackTime     float64 `yaml:"attack_time"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	DeathTime      float64 `yaml:"death_time"`
	Knockback      float64 `yaml:"knockback"`

	LungeSpeed    float64 `yaml:"lunge_speed"`
	LungeHop      float64 `yaml:"lunge_hop"`
	PreferredMin  float64 `yaml:"preferred_min"`
	PreferredMax  float64 `yaml:"preferred_max"`
	BurstCount    int     `yaml:"burst_count"`
	BurstInterval float64 `yaml:"burst_interval"`
	MaxCharges    int     `yaml:"max_charges"`
	RechargeTime  float64 `yaml:"recharge_time"`
	Projectile    string  `yaml:"projectile"`
	Hazard        string  `yaml:"hazard"`

	Drops []DropConfig `yaml:"drops"`
}

type DropConfig struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	Amount int     `yaml:"amount"`
}

type ProjectileConfig struct {
	Family   string       `yaml:"family"` // straight | bouncing
	Sprite   SpriteConfig `yaml:"sprite"`
	Hitbox   Rect         `yaml:"hitbox"`
	Speed    float64      `yaml:"speed"`
	Lift     float64      `yaml:"lift"` // initial upward speed
	Gravity  float64      `yaml:"gravity"`
	Damage   int          `yaml:"damage"`
	Piercing bool         `yaml:"piercing"`
	Lifetime float64      `yaml:"lifetime"`

	MaxBounces     int     `yaml:"max_bounces"`
	MinBounceSpeed float64 `yaml:"min_bounce_speed"`
	Restitution    float64 `yaml:"restitution"`
	BounceFriction float64 `yaml:"bounce_friction"`
	FadeDuration   float64 `yaml:"fade_duration"`
}

type ItemConfig struct {
	Sprite            SpriteConfig `yaml:"sprite"`
	Hitbox            Rect         `yaml:"hitbox"`
	Amount            int          `yaml:"amount"`
	Gravity           float64      `yaml:"gravity"`
	Friction          float64      `yaml:"friction"`
	MagnetRange       float64      `yaml:"magnet_range"`
	MagnetSpeed       float64      `yaml:"magnet_speed"`
	AutoCollect       bool         `yaml:"auto_collect"`
	AutoCollectRadius float64      `yaml:"auto_collect_radius"`
	Lifetime          float64      `yaml:"lifetime"`
	BlinkWindow       float64      `yaml:"blink_window"`
}

type HazardConfig struct {
	Sprite         SpriteConfig `yaml:"sprite"`
	Hitbox         Rect         `yaml:"hitbox"`
	Damage         int          `yaml:"damage"`
	Status         string       `yaml:"status"`
	StatusDuration float64      `yaml:"status_duration"`
	StatusInterval float64      `yaml:"status_interval"`
	StatusDamage   int          `yaml:"status_damage"`
	Lifetime       float64      `yaml:"lifetime"`
}

type NPCConfig struct {
	Name          string       `yaml:"name"`
	Sprite        SpriteConfig `yaml:"sprite"`
	Hitbox        Rect         `yaml:"hitbox"`
	InteractRange float64      `yaml:"interact_range"`
	Lines         []string     `yaml:"lines"`
}

type FlagConfig struct {
	Sprite SpriteConfig `yaml:"sprite"`
	Hitbox Rect         `yaml:"hitbox"`
}

// LayerConfig is one parallax background band
type LayerConfig struct {
	Factor     float64 `yaml:"factor"`
	DriftSpeed float64 `yaml:"drift_speed"`
	Y          float64 `yaml:"y"`
	Height     float64 `yaml:"height"`
	Spacing    float64 `yaml:"spacing"`
	Color      string  `yaml:"color"`
}

// SoundConfig describes a synthesized cue. A cue with Notes plays them in
// sequence, each for Duration seconds.
type SoundConfig struct {
	Freq     float64   `yaml:"freq"`
	Notes    []float64 `yaml:"notes"`
	Duration float64   `yaml:"duration"`
	Volume   float64   `yaml:"volume"`
	Loop     bool      `yaml:"loop"`
}
