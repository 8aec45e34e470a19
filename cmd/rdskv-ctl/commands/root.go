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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/eraft-io/rdskv/pkg/consts"
	"github.com/eraft-io/rdskv/rdsclient"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var (
	serverAddr  string
	dialTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "rdskv-ctl",
	Short: "command tools for the rdskv server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println("./rdskv-ctl -h for help")
			return
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", consts.DEFAULT_RDS_ADDR, "rds server address")
	rootCmd.PersistentFlags().DurationVar(&dialTimeout, "timeout", 3*time.Second, "dial timeout")
}

func dialServer() (*rdsclient.RdsClient, error) {
	return rdsclient.Dial(serverAddr, dialTimeout)
}

func printJSON(v interface{}) {
	data, _ := json.Marshal(v)
	var Options = &pretty.Options{Width: 80, Prefix: "", Indent: "\t", SortKeys: false}
	fmt.Printf("%s\n", pretty.Color(pretty.PrettyOptions(data, Options), pretty.TerminalStyle))
}
