//
// MIT License

// Copyright (c) 2026 eraft dev group

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package rdsserver

import (
	"runtime"
	"strconv"
	"time"

	"github.com/eraft-io/rdskv/pkg/log"
	"github.com/eraft-io/rdskv/shardkv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/mem"
)

//
// RecordMetrics samples store and host gauges every interval until stop is
// closed
//
func RecordMetrics(store *shardkv.ShardedStore, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			sampleMetrics(store)
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

func sampleMetrics(store *shardkv.ShardedStore) {
	for i := 0; i < store.ShardCount(); i++ {
		shardKeys.WithLabelValues(strconv.Itoa(i)).Set(float64(store.ShardLen(i)))
	}
	v, err := mem.VirtualMemory()
	if err != nil {
		log.MainLogger.Error().Msgf("get virtual memory stat error %s", err.Error())
	} else {
		totalMemory.Set(float64(v.Total))
		memoryAvailable.Set(float64(v.Available))
		memoryUsedPercent.Set(v.UsedPercent)
	}
	var m runtime.MemStats
	// process memory (mb)
	runtime.ReadMemStats(&m)
	rdsServerHeapAlloc.Set(float64(m.HeapAlloc) / 1024 / 1024)
}

var (
	connsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rdskv_connections_accepted_total",
		Help: "The total number of accepted client connections",
	})
	connsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rdskv_connections_active",
		Help: "client connections being served",
	})
	connFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdskv_connection_faults_total",
		Help: "connections closed by a fault, by kind",
	}, []string{"kind"})
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdskv_commands_total",
		Help: "The total number of decoded commands, by name (SET, GET or unknown)",
	}, []string{"cmd"})
	shardKeys = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rdskv_shard_keys",
		Help: "number of keys held by each shard",
	}, []string{"shard"})
	totalMemory = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rdskv_host_total_memory",
		Help: "host total memory",
	})
	memoryAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rdskv_host_available_memory",
		Help: "host available memory",
	})
	memoryUsedPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rdskv_host_memory_used_percent",
		Help: "host memory used percent",
	})
	rdsServerHeapAlloc = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rdskv_server_heap_alloc",
		Help: "rds server heap alloc (mb)",
	})
)
