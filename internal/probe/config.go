// Package probe drives a running bot's admin API with concurrent resolve
// requests and reports how the pipeline held up.
package probe

import "time"

// Defaults for Config fields left at zero.
const (
	DefaultWorkers = 4
	DefaultTimeout = 15 * time.Second
)

// DefaultQueries mixes shorthand, fused, agent, gloves and case lookups.
var DefaultQueries = []string{
	"ak redline",
	"awp asiimov",
	"m4a1s printstream",
	"deagle blaze",
	"karambit fade",
	"sport gloves vice",
	"kilowatt case",
	"sir bloody darryl",
	"usp kill confirmed",
	"glock fade",
}

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // admin API base, e.g. http://localhost:9080
	Queries []string      // queries sent once per round
	Rounds  int           // how many times the query list is replayed
	Workers int           // concurrent requests in flight
	Timeout time.Duration // per-request HTTP timeout
}

func (c Config) withDefaults() Config {
	if len(c.Queries) == 0 {
		c.Queries = DefaultQueries
	}
	if c.Rounds <= 0 {
		c.Rounds = 1
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Outcome classifies one resolve request.
type Outcome string

// Outcomes.
const (
	OutcomeFound    Outcome = "found"
	OutcomeEmpty    Outcome = "empty"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Result is the outcome of one request.
type Result struct {
	Query      string
	Outcome    Outcome
	Candidates int
	Top        string
	Latency    time.Duration
}

// Report aggregates a run.
type Report struct {
	Sent     int
	Found    int
	Empty    int
	Rejected int
	Failed   int
	Slowest  time.Duration
	Mean     time.Duration
	Duration time.Duration
	Results  []Result
}
