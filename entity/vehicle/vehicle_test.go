package vehicle

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
)

var origin = geometry.Point{}

func spawnAt(d entity.MovementDirection, x, y, v float64) Spawn {
	return Spawn{Direction: d, Turn: entity.TurnStraight, Lane: entity.LaneMiddle, Position: geometry.Point{X: x, Y: y}, V: v, Size: 10}
}

func TestIntegratorMovesAlongAxis(t *testing.T) {
	g := Integrator{MaxV: 40, Center: origin, TurnThreshold: 1}
	cases := []struct {
		d    entity.MovementDirection
		want geometry.Point
	}{
		{entity.Up, geometry.Point{X: 0, Y: 90}},
		{entity.Down, geometry.Point{X: 0, Y: 110}},
		{entity.Left, geometry.Point{X: -10, Y: 100}},
		{entity.Right, geometry.Point{X: 10, Y: 100}},
	}
	for _, c := range cases {
		v := newVehicle(1, spawnAt(c.d, 0, 100, 10), origin)
		g.Update(v, 1)
		assert.InDelta(t, c.want.X, v.Position().X, 1e-9, "%v", c.d)
		assert.InDelta(t, c.want.Y, v.Position().Y, 1e-9, "%v", c.d)
		assert.InDelta(t, geometry.Distance2D(c.want, origin), v.DistanceToIntersection(), 1e-9)
		assert.InDelta(t, v.DistanceToIntersection()/10, v.TimeToIntersection(), 1e-9)
	}
}

func TestIntegratorClampsVelocity(t *testing.T) {
	g := Integrator{MaxV: 40, Center: origin, TurnThreshold: 1}

	fast := newVehicle(1, spawnAt(entity.Up, 0, 100, 30), origin)
	fast.a = 100
	g.Update(fast, 1)
	assert.Equal(t, 40.0, fast.V())
	assert.InDelta(t, 60.0, fast.Position().Y, 1e-9)

	stopped := newVehicle(2, spawnAt(entity.Up, 0, 100, 5), origin)
	stopped.a = -100
	g.Update(stopped, 1)
	assert.Equal(t, 0.0, stopped.V())
	assert.Equal(t, 100.0, stopped.Position().Y)
	assert.Equal(t, mathutil.INF, stopped.TimeToIntersection())
}

func TestIntegratorKeepsHeldVehicle(t *testing.T) {
	g := Integrator{MaxV: 40, Center: origin, TurnThreshold: 1}
	v := newVehicle(1, spawnAt(entity.Up, 0, 100, 10), origin)
	v.a = 2
	v.held = true
	g.Update(v, 1)
	assert.Equal(t, 0.0, v.V())
	assert.Equal(t, 100.0, v.Position().Y)
}

func TestTurnFiresOnce(t *testing.T) {
	g := Integrator{MaxV: 40, Center: origin, TurnThreshold: 1, LaneAware: true}
	s := spawnAt(entity.Up, 0, 0.75, 1)
	s.Lane = entity.LaneLeft
	v := newVehicle(1, s, origin)

	g.Update(v, 0.25)
	assert.True(t, v.Crossed())
	assert.Equal(t, entity.TurnLeft, v.Turn())
	assert.Equal(t, entity.Left, v.Direction())

	// 仍在转向阈值范围内，不再转向
	g.Update(v, 0.25)
	assert.Equal(t, entity.Left, v.Direction())
	assert.Less(t, v.DistanceToIntersection(), 1.0)
	for range 10 {
		g.Update(v, 0.25)
	}
	assert.Equal(t, entity.Left, v.Direction())
	assert.InDelta(t, -2.75, v.Position().X, 1e-9)
	assert.InDelta(t, 0.5, v.Position().Y, 1e-9)
}

func TestTurnWithoutLaneAware(t *testing.T) {
	s := spawnAt(entity.Down, 0, 0, 1)
	s.Turn = entity.TurnRight
	s.Lane = entity.LaneLeft
	v := newVehicle(1, s, origin)
	v.UpdateDirectionAtIntersection(false)
	assert.Equal(t, entity.TurnRight, v.Turn())
	assert.Equal(t, entity.Left, v.Direction())
}

func TestTurnCycles(t *testing.T) {
	d := entity.Up
	for _, want := range []entity.MovementDirection{entity.Left, entity.Down, entity.Right, entity.Up} {
		d = turnLeft(d)
		assert.Equal(t, want, d)
	}
	for _, want := range []entity.MovementDirection{entity.Right, entity.Down, entity.Left, entity.Up} {
		d = turnRight(d)
		assert.Equal(t, want, d)
	}
	for _, l := range []entity.Lane{entity.LaneLeft, entity.LaneMiddle, entity.LaneRight} {
		s := spawnAt(entity.Right, 0, 0, 1)
		s.Lane = l
		v := newVehicle(1, s, origin)
		v.UpdateDirectionAtIntersection(true)
		assert.Equal(t, l.Turn(), v.Turn())
	}
}

func TestRequestViewOverridesVelocity(t *testing.T) {
	v := newVehicle(1, spawnAt(entity.Up, 0, 100, 0), origin)
	var iv entity.IVehicle = requestView{Vehicle: v, v: 30}
	assert.Equal(t, 30.0, iv.V())
	assert.Equal(t, 0.0, v.V())
	assert.Equal(t, int32(1), iv.ID())
}
