// Package sim provides the discrete-time simulation core for adaptive bitrate (ABR)
// streaming.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - config.go: ladder, client and simulation configuration and their validation
//   - client.go: per-run client state (buffer occupancy, previous decision)
//   - strategy.go: the DecisionStrategy interface every bitrate algorithm implements
//   - simulator.go: the step loop that drives a strategy over a bandwidth sequence
//   - metrics.go: reduction of a trajectory to QoE summary statistics
//
// # Architecture
//
// The sim package defines the strategy interface, the concrete strategies and the
// loop. Supporting code lives in sub-packages:
//   - sim/trace/: per-step decision trace recording (no dependency on sim)
//   - sim/workload/: bandwidth scenario generation and trace replay
//   - sim/experiment/: scenario x strategy comparison driver
//   - sim/export/: CSV and Prometheus text-file exporters
//
// # Key Interfaces
//
//   - DecisionStrategy: select a bitrate given a bandwidth sample and client state
//   - Delegator: optional, implemented by strategies that forward to another strategy
//
// A single run is strictly sequential. Separate runs share nothing and may execute
// concurrently as long as each run owns its strategy instance.
package sim
