// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Meter is a tiny always-on-top level meter that shows the
//	  loudness of the default microphone as a stack of colored bars
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fox-meter/display"
	"fox-meter/model"
	"fox-meter/shared"
	"fox-meter/util"

	"github.com/spf13/cobra"
)

var (
	// arguments
	args model.CommandLineArgs

	rootCmd = &cobra.Command{
		Use:   "fox-meter",
		Short: "Show the level of the default microphone as a stack of colored bars",

		Run: func(cmd *cobra.Command, _ []string) {
			config, err := util.ReadConfig(&args)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}

			if err := runEngine(config); err != nil {
				if errors.Is(err, display.ErrDisplayUnsupported) {
					fmt.Fprintln(shared.StockStderr(), err.Error())
				} else {
					slog.Error(err.Error())
				}
				os.Exit(1)
			}
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&args.ConfigFile, "config", "c", "", "Path of the yaml config file (default "+util.DefaultConfigFile+" if present)")
	rootCmd.Flags().StringVarP(&args.Backend, "backend", "b", "", "Capture backend: portaudio, jack, file or simulate")
	rootCmd.Flags().StringVarP(&args.InputFile, "input", "i", "", "WAV file to replay, implies --backend file")
	rootCmd.Flags().StringVarP(&args.OutputType, "output", "o", "", "Output type: tui or json")
	rootCmd.Flags().StringVar(&args.LogLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
	rootCmd.Flags().StringVar(&args.LogFile, "log-file", "", "Write logs to this file instead of the UI")

	// ui test commands
	rootCmd.Flags().BoolVar(&args.Simulate, "simulate", false, "Generate a test signal instead of capturing audio")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
