package flip

// Collide handles obstacle and wall contact.
//
// Particles inside the obstacle's reach take on the obstacle velocity; they
// are not pushed out, so a fast obstacle can visibly pass through the liquid.
// Particles are then clamped into the open interior of the tank and lose the
// velocity component along every clamped axis.
func (f *Fluid) Collide(obs Obstacle) {
	h := f.h
	r := f.radius
	minDist := obs.Radius + r
	minDist2 := minDist * minDist

	minX := h + r
	maxX := float32(f.NumX-1)*h - r
	minY := h + r
	maxY := float32(f.NumY-1)*h - r

	for i := 0; i < f.NumParticles; i++ {
		x := f.Pos[2*i]
		y := f.Pos[2*i+1]

		dx := x - obs.X
		dy := y - obs.Y
		if dx*dx+dy*dy < minDist2 {
			f.Vel[2*i] = f.obstacleVelX
			f.Vel[2*i+1] = f.obstacleVelY
		}

		if x < minX {
			x = minX
			f.Vel[2*i] = 0
		}
		if x > maxX {
			x = maxX
			f.Vel[2*i] = 0
		}
		if y < minY {
			y = minY
			f.Vel[2*i+1] = 0
		}
		if y > maxY {
			y = maxY
			f.Vel[2*i+1] = 0
		}
		f.Pos[2*i] = x
		f.Pos[2*i+1] = y
	}
}
