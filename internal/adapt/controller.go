package adapt

import "math"

// Controller is the RSwM3-style accept/reject step-size policy. A step is
// accepted when its normalized error is within tolerance (e <= 1); either
// way the controller proposes the next step size
//
//	dt_next = dt * min(qmax, max(qmin, gamma*(1/e)^(1/(order+0.5))))
//
// where gamma is the risk factor. The previous error and accepted dt are
// carried so repeated calls see the short history PI control needs.
type Controller struct {
	Order         float64 // strong order of the active kernel
	Gamma         float64 // risk factor
	Qmax, Qmin    float64 // growth/shrink clamps
	DiscardLength float64 // |dt_next - dt| below this is treated as no change

	prevErr float64
	prevDt  float64
}

// Decision is one controller outcome.
type Decision struct {
	Accept bool
	DtNext float64
}

func NewController(order, gamma, qmax, discardLength float64) *Controller {
	return &Controller{
		Order:         order,
		Gamma:         gamma,
		Qmax:          qmax,
		Qmin:          0.2,
		DiscardLength: discardLength,
	}
}

// Propose consumes the error norm of an attempted step of size dt. On
// acceptance gamma amplifies the growth proposal; on rejection it divides
// the shrink proposal instead, so a rejected step always retries with a
// strictly smaller dt.
func (c *Controller) Propose(e, dt float64) Decision {
	exponent := 1 / (c.Order + 0.5)
	accept := e <= 1

	var q float64
	switch {
	case e <= 0:
		q = c.Qmax
	case accept:
		q = c.Gamma * math.Pow(1/e, exponent)
	default:
		q = math.Pow(1/e, exponent) / c.Gamma
	}
	q = math.Min(c.Qmax, math.Max(c.Qmin, q))

	dtNext := dt * q
	if math.Abs(dtNext-dt) < c.DiscardLength {
		dtNext = dt
	}

	if accept {
		c.prevErr = e
		c.prevDt = dt
	}
	return Decision{Accept: accept, DtNext: dtNext}
}

// PrevErr and PrevDt expose the carried history of the last accepted step.
func (c *Controller) PrevErr() float64 { return c.prevErr }
func (c *Controller) PrevDt() float64  { return c.prevDt }
