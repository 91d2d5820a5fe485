// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import "github.com/vechain/auction/metrics"

var (
	metricRequests       = metrics.LazyLoadCounterVec("requests_by_entrypoint", []string{"entrypoint", "outcome"})
	metricBonded         = metrics.LazyLoadCounterVec("bonds_added", []string{"kind"})
	metricStateChanges   = metrics.LazyLoadCounter("state_changes")
	metricStepDuration   = metrics.LazyLoadHistogramVec("step_duration_micros", []string{"outcome"}, metrics.BucketMicrosStep)
	metricRewardFailures = metrics.LazyLoadCounter("reward_failures")
	metricLastEra        = metrics.LazyLoadGauge("last_era")
	metricEraValidators  = metrics.LazyLoadGaugeVec("era_validators_by_kind", []string{"kind"})
)
