package cmd

import "time"

// Config carries everything the process needs from the environment.
// SimulatorSchedule is a cron spec with a seconds field; leave it empty to
// run without simulated orders. RiderMinDelay and RiderMaxDelay bound how
// long a rider takes to show up for a new order; zero values keep the pool
// defaults.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	SimulatorSchedule string
	RiderMinDelay     time.Duration
	RiderMaxDelay     time.Duration
}
