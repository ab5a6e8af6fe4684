// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Config is the configurable parameters of the node. Production networks lock the defaults,
// custom and solo networks may override them from the genesis file.

var (
	tickInterval    uint64 = 10         // 10 seconds per clock tick
	launchTime      uint64 = 1526400000 // unix time of tick zero
	replayCacheSize int    = 8192       // signed requests remembered by the API

	locked bool
)

type Config struct {
	TickInterval    uint64 `json:"tickInterval" yaml:"tickInterval"`       // seconds between two consecutive ticks.
	LaunchTime      uint64 `json:"launchTime" yaml:"launchTime"`           // unix time of tick zero.
	ReplayCacheSize int    `json:"replayCacheSize" yaml:"replayCacheSize"` // number of request hashes kept for replay detection.
}

// SetConfig sets the config.
// If the config is not set, the default values will be used.
// If the config is locked, will panic.
func SetConfig(cfg Config) {
	if locked {
		panic("config is locked, cannot be set")
	}

	if cfg.TickInterval != 0 {
		tickInterval = cfg.TickInterval
	}

	if cfg.LaunchTime != 0 {
		launchTime = cfg.LaunchTime
	}

	if cfg.ReplayCacheSize != 0 {
		replayCacheSize = cfg.ReplayCacheSize
	}
}

// LockConfig locks the config, preventing any further changes.
func LockConfig() {
	locked = true
}

func TickInterval() uint64 {
	return tickInterval
}

func LaunchTime() uint64 {
	return launchTime
}

func ReplayCacheSize() int {
	return replayCacheSize
}
