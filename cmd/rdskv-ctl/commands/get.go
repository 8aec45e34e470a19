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
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "get the value of key",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := dialServer()
		if err != nil {
			return err
		}
		defer cli.Close()
		v, ok, err := cli.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			printJSON(map[string]interface{}{"key": args[0], "value": nil})
			return nil
		}
		printJSON(map[string]interface{}{"key": args[0], "value": string(v)})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
