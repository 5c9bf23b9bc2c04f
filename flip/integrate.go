package flip

// Integrate applies gravity to every particle's vertical velocity and then
// advances positions with explicit Euler.
func (f *Fluid) Integrate(dt, gravity float32) {
	for i := 0; i < f.NumParticles; i++ {
		f.Vel[2*i+1] += dt * gravity
		f.Pos[2*i] += f.Vel[2*i] * dt
		f.Pos[2*i+1] += f.Vel[2*i+1] * dt
	}
}
