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

package log

import (
	"fmt"
	"io"
	"strings"

	log "github.com/phuslu/log"
)

var MainLogger *log.Logger

func init() {
	MainLogger = &log.Logger{
		Level:  log.ParseLevel("info"),
		Caller: 1,
		Writer: &log.ConsoleWriter{
			Formatter: func(w io.Writer, a *log.FormatterArgs) (int, error) {
				return fmt.Fprintf(w, "%c%s %s %s] %s\n%s", strings.ToUpper(a.Level)[0],
					a.Time, a.Goid, a.Caller, a.Message, a.Stack)
			},
		},
	}
}

//
// SetLevel changes the level of MainLogger, unknown names fall back to info
//
func SetLevel(level string) {
	MainLogger.Level = log.ParseLevel(strings.ToLower(level))
}
