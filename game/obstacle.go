package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flip/components"
	"github.com/pthm-cable/flip/scene"
	"github.com/pthm-cable/flip/systems"
)

// initObstacle creates the ECS world with the single obstacle entity.
func (g *Game) initObstacle(tank scene.TankSpec) {
	g.world = ecs.NewWorld()
	g.obstacleMapper = ecs.NewMap4[components.Position, components.Velocity, components.Obstacle, components.Orbit](g.world)
	g.posMap = ecs.NewMap[components.Position](g.world)
	g.velMap = ecs.NewMap[components.Velocity](g.world)
	g.obsMap = ecs.NewMap[components.Obstacle](g.world)
	g.orbitMap = ecs.NewMap[components.Orbit](g.world)

	pos := components.Position{}
	vel := components.Velocity{}
	obs := components.Obstacle{Radius: g.settings.ObstacleRadius}
	orbit := g.orbitFor(tank)
	g.obstacle = g.obstacleMapper.NewEntity(&pos, &vel, &obs, &orbit)

	g.obstacleSystem = systems.NewObstacleSystem(g.world, g.bounds)
	g.placeObstacle(tank)
}

// orbitFor returns the scripted path starting at the tank's obstacle start.
// A disabled orbit has zero radius, which holds the obstacle still.
func (g *Game) orbitFor(tank scene.TankSpec) components.Orbit {
	oc := g.cfg.Obstacle.Orbit
	if !oc.Enabled {
		return components.Orbit{CenterX: tank.ObstacleX, CenterY: tank.ObstacleY}
	}
	r := float32(oc.Radius)
	return components.Orbit{
		CenterX: tank.ObstacleX - r,
		CenterY: tank.ObstacleY,
		Radius:  r,
		Period:  float32(oc.Period),
	}
}

// placeObstacle puts the entity back at the start and clears its motion.
func (g *Game) placeObstacle(tank scene.TankSpec) {
	pos := g.posMap.Get(g.obstacle)
	pos.X, pos.Y = g.bounds.Clamp(tank.ObstacleX, tank.ObstacleY, g.settings.ObstacleRadius)
	*g.orbitMap.Get(g.obstacle) = g.orbitFor(tank)
	vel := g.velMap.Get(g.obstacle)
	vel.X, vel.Y = 0, 0
	g.obstacleSystem.Reset()
	g.obsMap.Get(g.obstacle).Jumped = true
}

// syncObstacle feeds the entity position to the scene, which estimates the
// obstacle velocity from the displacement unless the obstacle jumped.
func (g *Game) syncObstacle() {
	pos := g.posMap.Get(g.obstacle)
	obs := g.obsMap.Get(g.obstacle)
	obs.Radius = g.settings.ObstacleRadius

	g.scene.SetObstacle(pos.X, pos.Y, obs.Jumped)
	obs.Jumped = false
}

// beginDrag takes the obstacle off its orbit and jumps it to (x, y).
func (g *Game) beginDrag(x, y float32) {
	obs := g.obsMap.Get(g.obstacle)
	obs.Dragged = true
	g.moveDragged(x, y)
	obs.Jumped = true
}

// moveDragged moves a dragged obstacle to (x, y).
func (g *Game) moveDragged(x, y float32) {
	pos := g.posMap.Get(g.obstacle)
	vel := g.velMap.Get(g.obstacle)
	x, y = g.bounds.Clamp(x, y, g.settings.ObstacleRadius)
	if dt := g.settings.DT; dt > 0 {
		vel.X = (x - pos.X) / dt
		vel.Y = (y - pos.Y) / dt
	}
	pos.X, pos.Y = x, y
}

// endDrag hands the obstacle back to its orbit and stops it. Without an
// orbit it stays where it was released. Rejoining the orbit is a jump, so
// the scene does not turn it into an obstacle velocity.
func (g *Game) endDrag() {
	obs := g.obsMap.Get(g.obstacle)
	obs.Dragged = false
	obs.Jumped = true
	if orbit := g.orbitMap.Get(g.obstacle); orbit.Radius == 0 {
		pos := g.posMap.Get(g.obstacle)
		orbit.CenterX, orbit.CenterY = pos.X, pos.Y
	}
	vel := g.velMap.Get(g.obstacle)
	vel.X, vel.Y = 0, 0
	g.scene.ReleaseObstacle()
}

// dragging reports whether the obstacle is under mouse control.
func (g *Game) dragging() bool {
	return g.obsMap.Get(g.obstacle).Dragged
}
