package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

func loadConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader("../../../cmd/game/configs").LoadAll()
	require.NoError(t, err)
	return cfg
}

func TestFactory_NewPlayer(t *testing.T) {
	f := New(loadConfig(t))
	p := f.NewPlayer(32, 160)

	assert.Equal(t, entity.EntityID(1), p.ID)
	assert.Equal(t, 5, p.Health.Max)
	assert.Equal(t, 1.0, p.Health.InvulnDuration)
	assert.Equal(t, 1800.0, p.Gravity)
	assert.Equal(t, 5, p.Ammo)
	assert.Equal(t, 10, p.MaxAmmo)
	assert.Equal(t, 10.0, p.Box.Width)
	assert.Equal(t, entity.AnimIdle, p.Anim.Current())
	assert.Equal(t, "player", p.Sprite)
}

func TestFactory_IDsAreMonotonic(t *testing.T) {
	f := New(loadConfig(t))
	a := f.NewFlag(0, 0)
	b := f.NewPlayer(0, 0)
	c, err := f.NewItem("coin", 0, 0)
	require.NoError(t, err)

	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)
}

func TestFactory_NewEnemy(t *testing.T) {
	f := New(loadConfig(t))

	e, err := f.NewEnemy("caster", 100, 50, true)
	require.NoError(t, err)
	assert.Equal(t, entity.ArchetypeCaster, e.Archetype)
	assert.Equal(t, 3, e.Health.Current)
	assert.Equal(t, 3, e.Charges)
	assert.Equal(t, 3, e.Tuning.BurstCount)
	assert.Equal(t, "glob", e.Tuning.Projectile)
	assert.True(t, e.FacingRight)
	assert.Equal(t, 1.0, e.Dir)
	require.NotNil(t, e.Patrol)
	assert.Equal(t, 76.0, e.Patrol.Left)
	assert.Equal(t, 124.0, e.Patrol.Right)

	g, err := f.NewEnemy("grunt", 0, 0, false)
	require.NoError(t, err)
	require.Len(t, g.Drops, 2)
	assert.Equal(t, "coin", g.Drops[0].ItemType)
	assert.Equal(t, entity.AnimPatrol, g.Anim.Current())
	assert.Zero(t, g.Health.InvulnDuration)

	toad, err := f.NewEnemy("toad", 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0.2, toad.Health.InvulnDuration)

	_, err = f.NewEnemy("dragon", 0, 0, false)
	assert.True(t, errors.Is(err, ErrUnknownDescriptor))
}

func TestFactory_NewProjectile(t *testing.T) {
	f := New(loadConfig(t))
	owner := entity.NewEntity(entity.KindPlayer, 0, 0, 16, 16)

	rock, err := f.NewProjectile("rock", &owner, entity.OwnerPlayer, 50, 50, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.FamilyBouncing, rock.Family)
	assert.Equal(t, 220.0, rock.VX)
	assert.Equal(t, -160.0, rock.VY)
	assert.Equal(t, 47.0, rock.X, "centred on the spawn point")
	assert.Equal(t, 0.55, rock.Restitution)
	assert.Same(t, &owner, rock.Owner)

	arrow, err := f.NewProjectile("arrow", nil, entity.OwnerEnemy, 0, 0, -3, 4)
	require.NoError(t, err)
	assert.Equal(t, entity.FamilyStraight, arrow.Family)
	assert.InDelta(t, -108.0, arrow.VX, 1e-9)
	assert.InDelta(t, 144.0, arrow.VY, 1e-9)

	_, err = f.NewProjectile("laser", nil, entity.OwnerEnemy, 0, 0, 1, 0)
	assert.ErrorIs(t, err, ErrUnknownDescriptor)
}

func TestFactory_Build(t *testing.T) {
	f := New(loadConfig(t))

	tests := []struct {
		name string
		desc config.EntityDescriptor
		kind entity.Kind
	}{
		{"enemy", config.EntityDescriptor{Type: "enemy:toad", X: 10, Y: 20}, entity.KindEnemy},
		{"item", config.EntityDescriptor{Type: "item:heart"}, entity.KindItem},
		{"hazard", config.EntityDescriptor{Type: "hazard:poison_puddle"}, entity.KindHazard},
		{"npc", config.EntityDescriptor{Type: "npc:miller"}, entity.KindNPC},
		{"flag", config.EntityDescriptor{Type: "flag"}, entity.KindFlag},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := f.Build(tt.desc, i)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Core().Kind)
			assert.Equal(t, i, s.Core().SpawnIndex)
		})
	}

	_, err := f.Build(config.EntityDescriptor{Type: "boss:ogre"}, 0)
	assert.ErrorIs(t, err, ErrUnknownDescriptor)
	_, err = f.Build(config.EntityDescriptor{Type: "item:sword"}, 0)
	assert.ErrorIs(t, err, ErrUnknownDescriptor)
}

func TestFactory_Build_Props(t *testing.T) {
	f := New(loadConfig(t))

	s, err := f.Build(config.EntityDescriptor{
		Type:  "enemy:grunt",
		X:     230,
		Props: map[string]any{"patrolLeft": 200.0, "patrolRight": 280.0},
	}, 0)
	require.NoError(t, err)
	e := s.(*entity.Enemy)
	assert.Equal(t, 200.0, e.Patrol.Left)
	assert.Equal(t, 280.0, e.Patrol.Right)

	s, err = f.Build(config.EntityDescriptor{
		Type:  "npc:miller",
		Props: map[string]any{"lines": []any{"hello"}},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, s.(*entity.NPC).Lines)

	s, err = f.Build(config.EntityDescriptor{Type: "item:coin", Props: map[string]any{"amount": 5.0}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, s.(*entity.Item).Amount)
}

func TestFactory_SpikeHazards(t *testing.T) {
	f := New(loadConfig(t))
	spike := entity.Tile{Type: entity.TileSpike, Damage: 2}
	stage := &entity.Stage{
		Width:    4,
		Height:   1,
		TileSize: 16,
		Tiles:    [][]entity.Tile{{{}, spike, spike, {}}},
	}

	hazards := f.SpikeHazards(stage)
	require.Len(t, hazards, 1)
	assert.Equal(t, 16.0, hazards[0].X)
	assert.Equal(t, 32.0, hazards[0].W)
	assert.Equal(t, 2, hazards[0].Damage)
}

func TestFactory_NilConfig(t *testing.T) {
	f := New(nil)
	p := f.NewPlayer(0, 0)
	assert.Equal(t, 1, p.Health.Max)
	assert.Empty(t, f.Layers())

	_, err := f.NewItem("coin", 0, 0)
	assert.ErrorIs(t, err, ErrUnknownDescriptor)
}
