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

package main

import (
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eraft-io/rdskv/pkg/consts"
	"github.com/eraft-io/rdskv/pkg/log"
	"github.com/eraft-io/rdskv/rdsserver"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var cfg = rdsserver.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "rds_server",
	Short: "sharded in-memory key value server speaking the redis protocol",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRdsServer(cfg)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to serve clients on")
	flags.StringVar(&cfg.MonitorAddr, "monitor_addr", cfg.MonitorAddr, "address of the metrics and pprof endpoint, empty disables it")
	flags.IntVar(&cfg.ShardNum, "shards", cfg.ShardNum, "number of store shards")
	flags.StringVar(&cfg.KeyHash, "hash", cfg.KeyHash, "key hash used for shard routing: xxhash or crc32")
	flags.StringVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "log level: debug, info, warn, error")
}

func runRdsServer(cfg rdsserver.Config) error {
	log.SetLevel(cfg.LogLevel)
	store, err := cfg.MakeStore()
	if err != nil {
		return err
	}
	svr := rdsserver.MakeRdsServer(store)

	stopMonitor := make(chan struct{})
	defer close(stopMonitor)
	if cfg.MonitorAddr != "" {
		rdsserver.RecordMetrics(store, consts.MONITOR_INTERVAL_SECONDS*time.Second, stopMonitor)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MonitorAddr, nil); err != nil {
				log.MainLogger.Error().Msgf("rds server monitor failed to: %v", err)
			}
		}()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.MainLogger.Info().Msgf("received sig %v, closing rds server", sig)
		svr.Close()
	}()

	if err := svr.ListenAndServe(cfg.Addr); err != rdsserver.ErrServerClosed {
		log.MainLogger.Error().Msgf("rds server failed to serve: %v", err)
		return err
	}
	log.MainLogger.Info().Msgf("rds server stopped, %d keys dropped", store.Len())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}
