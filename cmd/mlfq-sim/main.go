package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"mlfqsim"
)

func main() {
	var (
		configPath   = flag.String("config", "", "JSON simulation parameters (defaults to the reference configuration)")
		workloadPath = flag.String("workload", "", "CSV workload: id,arrival,burst,class (defaults to the demo mix)")
		logLevel     = flag.String("log-level", "warn", "log level: debug, info, warn, error")
		showTrace    = flag.Bool("trace", true, "print the per-event trace")
	)
	flag.Parse()

	params := mlfqsim.DefaultParams()
	if *configPath != "" {
		var err error
		params, err = mlfqsim.LoadParams(*configPath)
		if err != nil {
			fatal(err)
		}
	}

	workload := mlfqsim.DefaultWorkload()
	if *workloadPath != "" {
		f, err := os.Open(*workloadPath)
		if err != nil {
			fatal(err)
		}
		workload, err = mlfqsim.LoadWorkload(f)
		_ = f.Close()
		if err != nil {
			fatal(err)
		}
	}

	logger := mlfqsim.BuildLogger(os.Stderr, *logLevel)
	sim, err := mlfqsim.NewSimulator(params, workload, logger)
	if err != nil {
		fatal(err)
	}

	mlfqsim.RenderPreamble(os.Stdout, params)

	runErr := sim.Run()
	if runErr != nil && !errors.Is(runErr, mlfqsim.ErrTimeLimit) {
		fatal(runErr)
	}

	if *showTrace {
		mlfqsim.RenderTrace(os.Stdout, sim.Events())
		fmt.Println()
	}

	if runErr != nil {
		// time bound hit: report how far the run got instead of a table
		fmt.Println(runErr)
		os.Exit(1)
	}

	sum, err := sim.Summary()
	if err != nil {
		fatal(err)
	}
	mlfqsim.RenderSummary(os.Stdout, sum)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
