package input

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
)

func writeScript(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "vehicles.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestInitFromFile(t *testing.T) {
	file := writeScript(t, `
- {step: 5, direction: down, turn: left, lane: left, x: 378, y: 0, v: 20, a: 0}
- {step: 0, direction: up, turn: straight, lane: middle, x: 400, y: 800, v: 30, a: 1, size: 12}
`)
	in, err := Init(context.Background(), config.Config{
		Input: config.Input{Vehicles: &config.InputPath{File: file}},
	})
	require.NoError(t, err)
	require.Len(t, in.Spawns, 2)

	first := in.Spawns[0]
	assert.Equal(t, int32(0), first.Step)
	assert.Equal(t, entity.Up, first.Spawn.Direction)
	assert.Equal(t, entity.TurnStraight, first.Spawn.Turn)
	assert.Equal(t, entity.LaneMiddle, first.Spawn.Lane)
	assert.Equal(t, geometry.Point{X: 400, Y: 800}, first.Spawn.Position)
	assert.Equal(t, 12.0, first.Spawn.Size)

	second := in.Spawns[1]
	assert.Equal(t, int32(5), second.Step)
	assert.Equal(t, entity.Down, second.Spawn.Direction)
	assert.Equal(t, entity.TurnLeft, second.Spawn.Turn)
	assert.Equal(t, 0.0, second.Spawn.Size)
}

func TestInitWithoutScript(t *testing.T) {
	in, err := Init(context.Background(), config.Config{})
	require.NoError(t, err)
	assert.Empty(t, in.Spawns)
}

func TestInitRejectsBadRecord(t *testing.T) {
	file := writeScript(t, `
- {step: 0, direction: north, turn: left, lane: left, x: 0, y: 0, v: 20, a: 0}
`)
	_, err := Init(context.Background(), config.Config{
		Input: config.Input{Vehicles: &config.InputPath{File: file}},
	})
	assert.Error(t, err)
}

func TestLoadFileUnknownField(t *testing.T) {
	file := writeScript(t, `
- {step: 0, direction: up, turn: left, lane: left, x: 0, y: 0, v: 20, a: 0, color: red}
`)
	_, err := LoadFile(file)
	assert.Error(t, err)
}

func TestInitMongoWithoutURI(t *testing.T) {
	_, err := Init(context.Background(), config.Config{
		Input: config.Input{Vehicles: &config.InputPath{DB: "aim", Col: "vehicles"}},
	})
	assert.Error(t, err)
}
