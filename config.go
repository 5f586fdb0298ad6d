package ecscore

// Config holds process-wide settings for the core.
var Config config = config{
	checksEnabled:   true,
	defaultCapacity: 1024,
}

type config struct {
	checksEnabled   bool
	defaultCapacity int
}

// SetChecksEnabled toggles precondition assertions. Disabling checks assumes valid inputs; behavior is undefined
// if a disabled precondition is violated.
func (c *config) SetChecksEnabled(enabled bool) {
	c.checksEnabled = enabled
}

// ChecksEnabled reports whether precondition assertions are active.
func (c *config) ChecksEnabled() bool {
	return c.checksEnabled
}

// SetDefaultCapacity stores a default entity capacity in Config. Nothing in
// the package reads it: Factory.NewWorld always takes an explicit capacity.
func (c *config) SetDefaultCapacity(n int) {
	c.defaultCapacity = n
}
