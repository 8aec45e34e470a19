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

package consts

const DEFAULT_SHARD_NUM = 10

const DEFAULT_RDS_ADDR = "127.0.0.1:6379"

const DEFAULT_MONITOR_ADDR = ":16379"

const DEFAULT_KEY_HASH = "xxhash"

const DEFAULT_LOG_LEVEL = "info"

const MONITOR_INTERVAL_SECONDS = 1

const MB = 1024 * 1024

const KB = 1024
