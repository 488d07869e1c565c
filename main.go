// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cybrota/arbor/shell"
	"github.com/cybrota/arbor/treemap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// settings resolved from ~/.arbor.yaml and the global flags
type options struct {
	config  *Config
	kind    treemap.Kind
	keyMode shell.KeyMode
}

func resolveOptions(cmd *cobra.Command) (*options, error) {
	config, _ := LoadConfig()

	flags := cmd.Flags()
	if flags.Changed("backend") {
		config.Map.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("keys") {
		config.Map.KeyMode, _ = flags.GetString("keys")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		config.Log.Level = "debug"
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	level, _ := logrus.ParseLevel(config.Log.Level)
	logrus.SetLevel(level)

	kind, _ := config.Kind()
	keyMode, _ := config.KeyMode()
	return &options{config: config, kind: kind, keyMode: keyMode}, nil
}

func runVisualizer(cmd *cobra.Command, args []string) {
	opts, err := resolveOptions(cmd)
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	var out bytes.Buffer
	console, err := shell.NewConsole(opts.keyMode, opts.kind, &out)
	if err != nil {
		log.Fatalf("Error creating map: %v", err)
	}
	if path, _ := cmd.Flags().GetString("load"); path != "" {
		if err := loadDataset(console, path); err != nil {
			log.Fatalf("Error loading dataset: %v", err)
		}
		out.Reset()
	}

	if err := runBubbleTeaApp(console, &out, NewHelpCache(), opts.config); err != nil {
		log.Fatalf("Error running visualizer: %v", err)
	}
}

func loadDataset(console shell.Console, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	n, err := console.Load(f)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	logrus.WithFields(logrus.Fields{"path": path, "records": n}).Debug("dataset read")
	return nil
}

func main() {
	asciiLogo := `
 █████╗ ██████╗ ██████╗  ██████╗ ██████╗
██╔══██╗██╔══██╗██╔══██╗██╔═══██╗██╔══██╗
███████║██████╔╝██████╔╝██║   ██║██████╔╝
██╔══██║██╔══██╗██╔══██╗██║   ██║██╔══██╗
██║  ██║██║  ██║██████╔╝╚██████╔╝██║  ██║
╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝
Ordered maps on AVL, red-black and splay trees, live in your terminal [Version: %s%s%s]

Copyright @ Naren Yellavula

`

	InitializeColors()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)

	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Launches the arbor tree visualizer",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run opens an interactive session on an empty map and draws the tree after every command`),
		Args:  cobra.NoArgs,
		Run:   runVisualizer,
	}
	cmdRun.Flags().String("load", "", "dataset of key<TAB>value or key=value lines to load first")

	var cmdExec = &cobra.Command{
		Use:   "exec <script>",
		Short: "Run map commands from a file",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Exec runs one shell command per line, '-' reads standard input"),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts, err := resolveOptions(cmd)
			if err != nil {
				log.Fatalf("Invalid settings: %v", err)
			}
			console, err := shell.NewConsole(opts.keyMode, opts.kind, os.Stdout)
			if err != nil {
				log.Fatalf("Error creating map: %v", err)
			}
			stop, _ := cmd.Flags().GetBool("stop-on-error")
			console.SetStopOnError(stop)

			if path, _ := cmd.Flags().GetString("load"); path != "" {
				if err := loadDataset(console, path); err != nil {
					log.Fatalf("Error loading dataset: %v", err)
				}
			}

			script := os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					log.Fatalf("Error opening script: %v", err)
				}
				defer f.Close()
				script = f
			}

			stats, err := console.ExecScript(script)
			logrus.WithFields(logrus.Fields{
				"executed": stats.Executed,
				"failed":   stats.Failed,
				"kind":     console.Kind(),
				"size":     console.Len(),
			}).Info("script finished")
			if err != nil {
				log.Fatalf("%sScript stopped%s: %v", Error, Reset, err)
			}
			if stats.Failed > 0 {
				os.Exit(1)
			}
		},
	}
	cmdExec.Flags().String("load", "", "dataset of key<TAB>value or key=value lines to load first")
	cmdExec.Flags().Bool("stop-on-error", false, "stop at the first failing command")

	var cmdBench = &cobra.Command{
		Use:   "bench",
		Short: "Compare the balancers on a random workload",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Bench replays the same seeded put/get/remove mix on every balancer"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts, err := resolveOptions(cmd)
			if err != nil {
				log.Fatalf("Invalid settings: %v", err)
			}
			ops, keySpace, seed := benchSizes(cmd, opts.config)
			quiet, _ := cmd.Flags().GetBool("quiet")

			w := generateWorkload(ops, keySpace, seed)
			results, err := runBench(treemap.Kinds(), w, !quiet)
			if err != nil {
				log.Fatalf("%sBench failed%s: %v", Error, Reset, err)
			}

			if chart, _ := cmd.Flags().GetBool("chart"); chart {
				if err := showChart(results, w); err != nil {
					log.Fatalf("Error drawing chart: %v", err)
				}
				return
			}
			fmt.Println(renderResults(results))
		},
	}
	cmdBench.Flags().Int("ops", 0, "number of operations (default from settings)")
	cmdBench.Flags().Int("key-space", 0, "keys are drawn from [0, key-space) (default from settings)")
	cmdBench.Flags().Int64("seed", 0, "random seed (default from settings)")
	cmdBench.Flags().Bool("chart", false, "draw the results as a full screen bar chart")
	cmdBench.Flags().Bool("quiet", false, "hide progress bars")

	var cmdFuzz = &cobra.Command{
		Use:   "fuzz",
		Short: "Check balancer invariants under random inserts and deletes",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Fuzz verifies every balancer after every step and compares it with a B-tree"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts, err := resolveOptions(cmd)
			if err != nil {
				log.Fatalf("Invalid settings: %v", err)
			}
			steps, keySpace, seed := benchSizes(cmd, opts.config)
			quiet, _ := cmd.Flags().GetBool("quiet")

			failed := false
			for _, r := range runFuzz(treemap.Kinds(), steps, keySpace, seed, !quiet) {
				if r.Err != nil {
					failed = true
					fmt.Printf("%s✗ %-8s%s failed after %d steps: %v\n", Error, r.Kind, Reset, r.Steps, r.Err)
					continue
				}
				fmt.Printf("%s✓ %-8s%s %d steps, max size %d, max height %d\n", Green, r.Kind, Reset, r.Steps, r.MaxSize, r.MaxHeight)
			}
			if failed {
				os.Exit(1)
			}
		},
	}
	cmdFuzz.Flags().Int("ops", 20000, "number of steps per balancer")
	cmdFuzz.Flags().Int("key-space", 2000, "keys are drawn from [0, key-space)")
	cmdFuzz.Flags().Int64("seed", 0, "random seed (default from settings)")
	cmdFuzz.Flags().Bool("quiet", false, "hide progress bars")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show arbor settings, creating ~/.arbor.yaml if missing",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings()
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print arbor usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the arbor CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print arbor version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "arbor",
		Version: version,
		Long:    asciiLogo,
		// Default to the visualizer when no subcommand is provided
		Run: runVisualizer,
	}
	rootCmd.Flags().String("load", "", "dataset of key<TAB>value or key=value lines to load first")
	rootCmd.PersistentFlags().String("backend", "", "balancer: avl, redblack or splay (default from settings)")
	rootCmd.PersistentFlags().String("keys", "", "key type: int or string (default from settings)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	rootCmd.AddCommand(cmdRun, cmdExec, cmdBench, cmdFuzz, cmdSettings, cmdUsage, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// benchSizes reads --ops, --key-space and --seed, falling back to settings
// for any flag left at zero
func benchSizes(cmd *cobra.Command, config *Config) (ops, keySpace int, seed int64) {
	ops, _ = cmd.Flags().GetInt("ops")
	keySpace, _ = cmd.Flags().GetInt("key-space")
	seed, _ = cmd.Flags().GetInt64("seed")
	if ops <= 0 {
		ops = config.Bench.Operations
	}
	if keySpace <= 0 {
		keySpace = config.Bench.KeySpace
	}
	if seed == 0 {
		seed = config.Bench.Seed
	}
	return ops, keySpace, seed
}
