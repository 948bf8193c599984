package config

// PhysicsConfig is the root config for physics.toml
type PhysicsConfig struct {
	Display   DisplayConfig   `toml:"display"`
	World     WorldConfig     `toml:"world"`
	Physics   PhysicsSettings `toml:"physics"`
	Movement  MovementConfig  `toml:"movement"`
	Jump      JumpConfig      `toml:"jump"`
	Dash      DashConfig      `toml:"dash"`
	Collision CollisionConfig `toml:"collision"`
	Combat    CombatConfig    `toml:"combat"`
	Feedback  FeedbackConfig  `toml:"feedback"`
	Camera    CameraConfig    `toml:"camera"`
}

type DisplayConfig struct {
	ScreenWidth  int    `toml:"screen_width"`
	ScreenHeight int    `toml:"screen_height"`
	Scale        int    `toml:"scale"`
	Framerate    int    `toml:"framerate"`
	Title        string `toml:"title"`
}

// WorldConfig controls the orchestrator time step
type WorldConfig struct {
	MaxDelta  float64 `toml:"max_delta"`  // seconds; larger frame gaps are clamped
	TimeScale float64 `toml:"time_scale"` // 0 is treated as 1
}

type PhysicsSettings struct {
	Gravity      float64 `toml:"gravity"`
	MaxFallSpeed float64 `toml:"max_fall_speed"`
}

type MovementConfig struct {
	Acceleration    float64 `toml:"acceleration"`
	Deceleration    float64 `toml:"deceleration"`
	MaxSpeed        float64 `toml:"max_speed"`
	AirControl      float64 `toml:"air_control"`
	TurnaroundBoost float64 `toml:"turnaround_boost"`
}

type JumpConfig struct {
	Force                  float64 `toml:"force"`
	VariableJumpMultiplier float64 `toml:"variable_jump_multiplier"`
	CoyoteTime             float64 `toml:"coyote_time"`
	JumpBuffer             float64 `toml:"jump_buffer"`
	DoubleJump             bool    `toml:"double_jump"`
	DoubleJumpForce        float64 `toml:"double_jump_force"`
}

type DashConfig struct {
	Speed           float64 `toml:"speed"`
	Duration        float64 `toml:"duration"`
	Cooldown        float64 `toml:"cooldown"`
	IframesDuration float64 `toml:"iframes_duration"`
}

type CollisionConfig struct {
	GroundTolerance float64 `toml:"ground_tolerance"`
	BroadphaseCell  int     `toml:"broadphase_cell"`
}

type CombatConfig struct {
	Iframes       float64         `toml:"iframes"`
	Knockback     KnockbackConfig `toml:"knockback"`
	ThrowCooldown float64         `toml:"throw_cooldown"`
}

type KnockbackConfig struct {
	Force        float64 `toml:"force"`
	UpForce      float64 `toml:"up_force"`
	StunDuration float64 `toml:"stun_duration"`
}

type FeedbackConfig struct {
	Hitstop     HitstopConfig     `toml:"hitstop"`
	ScreenShake ScreenShakeConfig `toml:"screen_shake"`
}

type HitstopConfig struct {
	Enabled bool `toml:"enabled"`
	Frames  int  `toml:"frames"`
}

type ScreenShakeConfig struct {
	Enabled   bool    `toml:"enabled"`
	Intensity float64 `toml:"intensity"`
	Decay     float64 `toml:"decay"`
}

type CameraConfig struct {
	Lerp float64 `toml:"lerp"`
}
