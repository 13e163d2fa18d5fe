package layout

// Config holds the simulation constants.
type Config struct {
	Width           float64
	Height          float64
	ChargeStrength  float64
	LinkDistance    float64
	CenterStrength  float64
	CollideDistance float64
	AlphaDecay      float64
	AlphaMin        float64
	VelocityDecay   float64
	Margin          float64
	DragAlphaTarget float64
}

// DefaultConfig returns the constants of the metro map canvas.
func DefaultConfig() Config {
	return Config{
		Width:           10000,
		Height:          10000,
		ChargeStrength:  -400,
		LinkDistance:    100,
		CenterStrength:  0.1,
		CollideDistance: 30,
		AlphaDecay:      0.05,
		AlphaMin:        0.001,
		VelocityDecay:   0.4,
		Margin:          30,
		DragAlphaTarget: 0.3,
	}
}

func (c Config) centerX() float64 { return c.Width / 2 }
func (c Config) centerY() float64 { return c.Height / 2 }
