package engine

// ComboSystem tracks chained scoring events inside a rolling time window.
// It is Idle while count is zero and Active otherwise.
type ComboSystem struct {
	window float64
	step   float64

	count int
	timer float64
	score int
	best  int
}

// NewComboSystem creates an idle combo tracker. window is in seconds; step is
// the multiplier increase per chained hit.
func NewComboSystem(window, step float64) *ComboSystem {
	return &ComboSystem{window: window, step: step}
}

// RegisterHit extends the combo, restarts the window and returns the points
// awarded for base after the combo multiplier, truncated toward zero.
func (c *ComboSystem) RegisterHit(base int) int {
	c.count++
	c.timer = c.window
	c.best = max(c.best, c.count)

	points := int(float64(base) * c.Multiplier())
	c.score += points
	return points
}

// Tick runs the window down; an expired window drops back to Idle.
func (c *ComboSystem) Tick(dt float64) {
	if c.count == 0 {
		return
	}
	c.timer -= dt
	if c.timer <= 0 {
		c.count = 0
		c.timer = 0
	}
}

// Reset forces Idle. The cumulative score is kept.
func (c *ComboSystem) Reset() {
	c.count = 0
	c.timer = 0
}

// ResetAll forces Idle and zeroes the cumulative score and best combo.
func (c *ComboSystem) ResetAll() {
	c.Reset()
	c.score = 0
	c.best = 0
}

// Multiplier is the factor the most recent hit was awarded with:
// 1 + (count-1)*step, and 1 while Idle. The next hit uses count+1.
func (c *ComboSystem) Multiplier() float64 {
	if c.count == 0 {
		return 1
	}
	return 1 + float64(c.count-1)*c.step
}

// Count is the number of chained hits; zero while Idle.
func (c *ComboSystem) Count() int { return c.count }

// Active reports whether a combo is in progress.
func (c *ComboSystem) Active() bool { return c.count > 0 }

// TimeLeft is the seconds remaining before the combo lapses.
func (c *ComboSystem) TimeLeft() float64 { return c.timer }

// Window is the configured combo window in seconds.
func (c *ComboSystem) Window() float64 { return c.window }

// Score is the total of points awarded since the last ResetAll.
func (c *ComboSystem) Score() int { return c.score }

// Best is the longest chain since the last ResetAll.
func (c *ComboSystem) Best() int { return c.best }

// ComboState is a copy of the combo tracker for readers outside the engine.
type ComboState struct {
	Count      int
	Multiplier float64
	TimeLeft   float64
	Window     float64
	Best       int
}

func (c *ComboSystem) state() ComboState {
	return ComboState{
		Count:      c.count,
		Multiplier: c.Multiplier(),
		TimeLeft:   c.timer,
		Window:     c.window,
		Best:       c.best,
	}
}
