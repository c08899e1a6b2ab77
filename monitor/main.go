// Monitor polls PMS7003 particulate matter sensors attached to serial ports,
// classifies the PM2.5 readings into air quality categories and appends
// InfluxDB line protocol telemetry to a file.
//
// Usage: monitor -port=/dev/ttyUSB0 -log-path=./measurements.log
//
// Flags:
//
//	-port: serial port of the sensor; every serial port is probed when omitted
//	-debug, -no-debug: print every raw frame instead of a summary; no telemetry is written
//	-log-only, -no-log-only: write telemetry without printing summaries
//	-log-path: telemetry file (default measurements.log)
//	-config: TOML file with default values for the flags above
//	-buffer-size, -flush-interval: telemetry file buffering
//	-baud, -read-timeout: serial port settings
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
	monitorInfrastructure "github.com/samoilenko/aqmonitor/monitor/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, finish := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer finish()

	config, err := monitorInfrastructure.GetFromCommandLineParameters(filepath.Base(os.Args[0]), os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	stdlibLogger := log.New(os.Stderr, "", log.LstdFlags)
	logger := monitorDomain.NewStdLogger(stdlibLogger, config.Debug)
	console := monitorInfrastructure.NewConsole(os.Stdout, os.Stderr, monitorInfrastructure.IsTerminal(os.Stdout))

	resolver := monitorDomain.NewDeviceResolver(
		monitorInfrastructure.NewSerialPortLister(),
		monitorInfrastructure.NewSerialOpener(config.BaudRate, config.ReadTimeout, logger),
		logger,
	)
	results, err := resolver.Resolve(ctx, config.Port)
	if err != nil {
		console.Fail("%s", err.Error())
		return 1
	}
	for _, result := range results {
		if err := result.Err(); err != nil {
			console.Warn("error on %s %s: %s", result.Description, result.Port, err.Error())
		}
	}

	devices, err := monitorDomain.UsableDevices(results)
	switch {
	case errors.Is(err, monitorDomain.ErrNoSerialPorts):
		console.Fail("no serial devices found. is your device plugged in? did you install drivers?")
		return 0
	case errors.Is(err, monitorDomain.ErrNoUsableDevices):
		console.Fail("no PMS7003 devices found; resolve any errors printed above and try again")
		return 0
	}

	writer := monitorInfrastructure.NewFileWriter(
		afero.NewOsFs(),
		config.LogPath,
		config.BufferSize,
		config.FlushInterval,
		logger,
	)
	if err := writer.Open(ctx); err != nil {
		console.Fail("error on opening %s: %s", config.LogPath, err.Error())
		monitorDomain.CloseDevices(devices, logger)
		return 1
	}
	sink := monitorInfrastructure.NewInfluxLogger(writer)

	if !config.Debug {
		console.Status("writing influxdb measurement %s to %s", sink.Measurement(), writer.Path())
	}
	for _, device := range devices {
		console.Progress("beginning to read data from %s...", device.ID())
	}

	liveness := monitorDomain.NewLivenessReporter(monitorInfrastructure.NewSystemdHeartbeat(logger), logger)
	loop := monitorDomain.NewPollingLoop(
		devices,
		sink,
		console,
		liveness,
		monitorDomain.SystemClock{},
		logger,
		monitorDomain.Mode{Debug: config.Debug, LogOnly: config.LogOnly},
	)

	// the writer keeps flushing until the loop has stopped emitting
	flushCtx, stopFlushing := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error {
		writer.Start(flushCtx)
		return nil
	})
	g.Go(func() error {
		defer stopFlushing()
		return loop.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		console.Fail("%s", err.Error())
		return 1
	}
	logger.Debug("all components stopped")
	return 0
}
