// Copyright 2024 The ishishnode Authors
// This file is part of the ishishnode library.
//
// The ishishnode library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// The ishishnode library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU Lesser
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ishishnode library. If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"runtime"
	"time"

	gethmetrics "github.com/rcrowley/go-metrics"
)

var gcCPUFraction = gethmetrics.NewRegisteredGaugeFloat64("node/system/gc_cpu_fraction", nil)

// CollectGoRuntimeStats samples runtime.MemStats on interval until stop is
// closed, feeding the GC CPU fraction gauge. It is meant to run on its own
// goroutine for the lifetime of the process.
func CollectGoRuntimeStats(interval time.Duration, stop <-chan struct{}) {
	var memStats runtime.MemStats
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runtime.ReadMemStats(&memStats)
			gcCPUFraction.Update(memStats.GCCPUFraction)
		case <-stop:
			return
		}
	}
}
