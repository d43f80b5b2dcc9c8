package steppers

// Tableau holds the coefficients of a stochastic Runge-Kutta scheme in the
// extended Butcher form of Roessler: two stage matrices each for the drift
// (A0, A1) and diffusion (B0, B1) stage combinations, drift weights Alpha,
// diffusion weight vectors Beta1..Beta4 applied to the noise functionals,
// and the stage nodes C0 (drift) and C1 (diffusion). Tableaus are immutable
// after construction.
type Tableau struct {
	Name   string
	Stages int
	Order  float64 // strong convergence order

	A0, A1 [][]float64
	B0, B1 [][]float64

	Alpha []float64
	Beta1 []float64
	Beta2 []float64
	Beta3 []float64
	Beta4 []float64

	C0 []float64
	C1 []float64
}

// SRA1 returns the two-stage SRA tableau for SDEs with additive noise,
// strong order 1.5.
//
// Reference: A. Roessler, "Runge-Kutta methods for the strong approximation
// of solutions of stochastic differential equations", SIAM J. Numer. Anal.,
// 48 (2010) 922-952.
func SRA1() *Tableau {
	return &Tableau{
		Name:   "SRA1",
		Stages: 2,
		Order:  1.5,
		A0: [][]float64{
			{0, 0},
			{3.0 / 4.0, 0},
		},
		B0: [][]float64{
			{0, 0},
			{3.0 / 2.0, 0},
		},
		Alpha: []float64{1.0 / 3.0, 2.0 / 3.0},
		Beta1: []float64{1, 0},
		Beta2: []float64{1, -1},
		C0:    []float64{0, 3.0 / 4.0},
		C1:    []float64{1, 0},
	}
}

// SRIW1 returns the four-stage SRI tableau for SDEs with diagonal or
// scalar noise, strong order 1.5.
//
// Reference: A. Roessler, SIAM J. Numer. Anal., 48 (2010) 922-952.
func SRIW1() *Tableau {
	return &Tableau{
		Name:   "SRIW1",
		Stages: 4,
		Order:  1.5,
		A0: [][]float64{
			{0, 0, 0, 0},
			{3.0 / 4.0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		A1: [][]float64{
			{0, 0, 0, 0},
			{1.0 / 4.0, 0, 0, 0},
			{1, 0, 0, 0},
			{0, 0, 1.0 / 4.0, 0},
		},
		B0: [][]float64{
			{0, 0, 0, 0},
			{3.0 / 2.0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		B1: [][]float64{
			{0, 0, 0, 0},
			{1.0 / 2.0, 0, 0, 0},
			{-1, 0, 0, 0},
			{-5, 3, 1.0 / 2.0, 0},
		},
		Alpha: []float64{1.0 / 3.0, 2.0 / 3.0, 0, 0},
		Beta1: []float64{-1, 4.0 / 3.0, 2.0 / 3.0, 0},
		Beta2: []float64{-1, 4.0 / 3.0, -1.0 / 3.0, 0},
		Beta3: []float64{2, -4.0 / 3.0, -2.0 / 3.0, 0},
		Beta4: []float64{-2, 5.0 / 3.0, -2.0 / 3.0, 1},
		C0:    []float64{0, 3.0 / 4.0, 0, 0},
		C1:    []float64{0, 1.0 / 4.0, 1, 1.0 / 4.0},
	}
}
