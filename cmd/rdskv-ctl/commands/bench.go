// Copyright [2022] [WellWood] [wellwood-x@googlegroups.com]

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

// 	http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"bytes"
	"time"

	"github.com/eraft-io/rdskv/pkg/consts"
	"github.com/eraft-io/rdskv/rdsclient"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	benchClients   int
	benchOps       int
	benchValueSize int
)

type benchResult struct {
	Clients   int     `json:"clients"`
	Ops       int     `json:"ops"`
	ValueSize int     `json:"value_size"`
	TimeCost  float64 `json:"time_cost_s"`
	OpsPerSec float64 `json:"ops_per_s"`
	MBPerSec  float64 `json:"mb_per_s"`
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "simple benchmark, every client sets then gets its own random keys",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runBench(serverAddr, benchClients, benchOps, benchValueSize)
		if err != nil {
			return err
		}
		printJSON(res)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchClients, "clients", 16, "concurrent connections")
	benchCmd.Flags().IntVar(&benchOps, "ops", 10000, "set+get pairs per client")
	benchCmd.Flags().IntVar(&benchValueSize, "value_size", 64, "value size in bytes")
	rootCmd.AddCommand(benchCmd)
}

func runBench(addr string, clients, ops, valueSize int) (*benchResult, error) {
	value := bytes.Repeat([]byte("x"), valueSize)
	var g errgroup.Group
	startT := time.Now()
	for c := 0; c < clients; c++ {
		g.Go(func() error {
			cli, err := rdsclient.Dial(addr, dialTimeout)
			if err != nil {
				return err
			}
			defer cli.Close()
			prefix := uuid.New().String()
			for i := 0; i < ops; i++ {
				key := prefix + ":" + uuid.New().String()
				if err := cli.Set(key, value); err != nil {
					return err
				}
				v, ok, err := cli.Get(key)
				if err != nil {
					return err
				}
				if !ok || !bytes.Equal(v, value) {
					return errors.Errorf("read back mismatch for key %s", key)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tc := time.Since(startT).Seconds()
	total := clients * ops * 2
	return &benchResult{
		Clients:   clients,
		Ops:       total,
		ValueSize: valueSize,
		TimeCost:  tc,
		OpsPerSec: float64(total) / tc,
		MBPerSec:  float64(total*valueSize) / float64(consts.MB) / tc,
	}, nil
}
