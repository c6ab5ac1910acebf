package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cnbltyasar/sdramsim/bench"
	"github.com/cnbltyasar/sdramsim/device"
	"github.com/cnbltyasar/sdramsim/monitoring"
	"github.com/cnbltyasar/sdramsim/sdram"
	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
	"github.com/cnbltyasar/sdramsim/trace"
)

var runFlags = struct {
	freqMHz     float64
	casLatency  int
	burstLength int
	accesses    int
	seed        int64
	tracePath   string
	traceOn     bool
	monitorOn   bool
	monitorPort int
	openBrowser bool
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a random write-then-read workload through the controller.",
	Run: func(_ *cobra.Command, _ []string) {
		runSimulation()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64Var(&runFlags.freqMHz,
		"freq-mhz", 100, "clock frequency in MHz")
	runCmd.Flags().IntVar(&runFlags.casLatency,
		"cas", 2, "CAS latency in cycles, 2 or 3")
	runCmd.Flags().IntVar(&runFlags.burstLength,
		"burst", 2, "burst length in device words")
	runCmd.Flags().IntVar(&runFlags.accesses,
		"accesses", 1000, "number of write-then-read pairs to replay")
	runCmd.Flags().Int64Var(&runFlags.seed,
		"seed", 1, "workload random seed")
	runCmd.Flags().BoolVar(&runFlags.traceOn,
		"trace", false, "record the command bus into a SQLite database")
	runCmd.Flags().StringVar(&runFlags.tracePath,
		"trace-file", "", "trace database path, empty picks a unique name")
	runCmd.Flags().BoolVar(&runFlags.monitorOn,
		"monitor", false, "start the monitoring server")
	runCmd.Flags().IntVar(&runFlags.monitorPort,
		"monitor-port", 0, "monitoring server port, 0 picks a random port")
	runCmd.Flags().BoolVar(&runFlags.openBrowser,
		"open-browser", false, "open the monitoring page in a browser")
}

// loadDotEnv lets a .env file in the working directory override flag
// defaults, for example SDRAMSIM_TRACE_FILE. A missing file is fine.
func loadDotEnv() {
	_ = godotenv.Load()

	if path, ok := os.LookupEnv("SDRAMSIM_TRACE_FILE"); ok &&
		runFlags.tracePath == "" {
		runFlags.tracePath = path
	}
}

func runSimulation() {
	loadDotEnv()

	engine := sim.NewSerialEngine()

	ctrlBuilder := sdram.MakeBuilder().
		WithFreq(sim.Freq(runFlags.freqMHz) * sim.MHz).
		WithCASLatency(runFlags.casLatency).
		WithBurstLength(runFlags.burstLength)

	var recorder trace.DataRecorder
	if runFlags.traceOn {
		w := trace.NewSQLiteWriter(runFlags.tracePath)
		recorder = w
		ctrlBuilder = ctrlBuilder.
			WithAdditionalHooks(trace.NewCommandTracer(recorder))

		fmt.Fprintf(os.Stderr, "Recording command trace to %s\n", w.Path())
	}

	ctrl := ctrlBuilder.Build("Ctrl")
	dev := device.MakeBuilder().Build("Device")

	workload := bench.RandomWorkload(runFlags.accesses, runFlags.seed, 23)

	benchBuilder := bench.MakeBuilder().
		WithEngine(engine).
		WithController(ctrl).
		WithDevice(dev).
		WithWorkload(workload)

	if runFlags.monitorOn {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(ctrl)
		monitor.RegisterComponent(dev)

		bar := monitor.CreateProgressBar("Workload", uint64(len(workload)))
		benchBuilder = benchBuilder.WithProgress(bar)

		if runFlags.monitorPort != 0 {
			monitor = monitor.WithPortNumber(runFlags.monitorPort)
		}
		if runFlags.openBrowser {
			monitor = monitor.WithBrowser()
		}

		monitor.StartServer()
	}

	b := benchBuilder.Build("Bench")
	b.TickNow()

	err := engine.Run()
	if err != nil {
		log.Panic(err)
	}

	reportStats(b, ctrl, dev, recorder)
}

func reportStats(
	b *bench.Comp,
	ctrl *sdram.Comp,
	dev *device.Comp,
	recorder trace.DataRecorder,
) {
	stats := b.Stats()

	fmt.Printf("cycles            %d\n", stats.Cycles)
	fmt.Printf("simulated time    %.9fs\n",
		float64(stats.Cycles)/float64(ctrl.Freq()))
	fmt.Printf("writes            %d\n", stats.Writes)
	fmt.Printf("reads             %d\n", stats.Reads)
	fmt.Printf("read mismatches   %d\n", stats.Mismatches)
	fmt.Printf("refreshes         %d\n",
		dev.CommandCount(signal.CmdKindAutoRefresh))

	if recorder != nil {
		recorder.Close()
	}
}
