package recipes

// Config son las constantes ajustables de la búsqueda.
type Config struct {
	// Intentos de GenerateBest.
	BestOfAttempts int
	// GenerateMany corta después de RetryFactor*count intentos.
	RetryFactor int
	// Costo tolerado como múltiplo del presupuesto antes de que el puntaje de costo llegue a 0.
	OverageCeiling float64
	// Banda aceptada alrededor de TargetCalories (0.25 = ±25%).
	CalorieTolerance float64
	// Presupuesto usado para el puntaje de costo cuando el pedido no trae uno.
	ReferenceBudget float64
}

func DefaultConfig() Config {
	return Config{
		BestOfAttempts:   5,
		RetryFactor:      3,
		OverageCeiling:   1.5,
		CalorieTolerance: 0.25,
		ReferenceBudget:  4.00,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BestOfAttempts <= 0 {
		c.BestOfAttempts = d.BestOfAttempts
	}
	if c.RetryFactor <= 0 {
		c.RetryFactor = d.RetryFactor
	}
	if c.OverageCeiling <= 1 {
		c.OverageCeiling = d.OverageCeiling
	}
	if c.CalorieTolerance <= 0 || c.CalorieTolerance >= 1 {
		c.CalorieTolerance = d.CalorieTolerance
	}
	if c.ReferenceBudget <= 0 {
		c.ReferenceBudget = d.ReferenceBudget
	}
	return c
}
