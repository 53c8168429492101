package rbm

// ProgressFn observes training progress. It receives a completion fraction
// in [0, 1] and a status line; it must not influence the training outcome.
// A nil ProgressFn disables reporting.
type ProgressFn func(fraction float64, status string)

// Config configures a single RBM trainer.
type Config struct {
	HiddenDim int
	Kind      Kind

	LearningRate   float64
	SlopeThreshold float64

	BatchSize            int
	MinEpochs, MaxEpochs int
	SlopeWindow          int

	// Pool supplies the sampler's random states. Nil means the shared
	// process-wide pool.
	Pool *StatePool
	// Seed and PoolSize only apply when the shared pool has not been
	// created yet.
	Seed     int64
	PoolSize int

	Progress ProgressFn
}

// DefaultConf returns the stock trainer configuration for a layer mapping
// onto hiddenDim units.
func DefaultConf(hiddenDim int, kind Kind) Config {
	return Config{
		HiddenDim:      hiddenDim,
		Kind:           kind,
		LearningRate:   0.1,
		SlopeThreshold: 0.05,
		BatchSize:      1024,
		MinEpochs:      5,
		MaxEpochs:      128,
		SlopeWindow:    5,
		PoolSize:       DefaultPoolSize,
	}
}

func (conf Config) IsValid() bool {
	return conf.HiddenDim >= 1 &&
		conf.LearningRate > 0 &&
		conf.SlopeThreshold > 0 &&
		conf.BatchSize >= 1 &&
		conf.MinEpochs >= 1 &&
		conf.MaxEpochs >= conf.MinEpochs &&
		conf.SlopeWindow >= 2 &&
		(conf.Kind == GaussianBernoulli || conf.Kind == BernoulliBernoulli)
}
