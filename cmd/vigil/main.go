// Command vigil is a bedside vitals monitor with a reasoning-aware
// model assistant.
//
// It acquires vital signs over a serial link (or a built-in simulator),
// processes them into display-ready values, and separates streamed
// model responses into reasoning and visible channels.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"vigil"
	"vigil/assistant"
	"vigil/config"
	"vigil/patient"
	"vigil/serial"
	"vigil/server"
	"vigil/tui"
	"vigil/vitals"
)

var rootCmd = &cobra.Command{
	Use:           "vigil",
	Short:         "Bedside vitals monitor with a reasoning assistant",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP API",
	RunE:  runServe,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal dashboard",
	RunE:  runTUI,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available serial ports",
	RunE:  runPorts,
}

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send one message and print the classified response",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(serveCmd, tuiCmd, portsCmd, chatCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "vigil: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mgr := serial.NewManager(serial.WithLogger(logger.With("component", "serial")))
	mgr.SetSimulated(cfg.Serial.Simulate)
	if cfg.Serial.Simulate || cfg.Serial.Port != "" {
		if err := mgr.Connect(cfg.Serial.PortConfig()); err != nil {
			return err
		}
		defer mgr.Disconnect()
	}

	proc := vitals.NewProcessor(mgr.Samples(),
		vitals.WithLogger(logger.With("component", "vitals")))
	proc.Start()
	defer proc.Stop()

	store, err := patient.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	provider, err := resolveProvider(cmd.Context(), cfg.Providers, logger)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server.Addr, proc, mgr, store, provider,
		server.WithLogger(logger.With("component", "server")))

	go func() {
		<-cmd.Context().Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// The alternate screen owns the terminal; drop log output.
	logger := slog.New(slog.DiscardHandler)

	mgr := serial.NewManager(serial.WithLogger(logger))
	mgr.SetSimulated(cfg.Serial.Simulate)
	if cfg.Serial.Simulate || cfg.Serial.Port != "" {
		if err := mgr.Connect(cfg.Serial.PortConfig()); err != nil {
			return err
		}
		defer mgr.Disconnect()
	}

	proc := vitals.NewProcessor(mgr.Samples(), vitals.WithLogger(logger))
	proc.Start()
	defer proc.Stop()

	provider, err := resolveProvider(cmd.Context(), cfg.Providers, logger)
	if err != nil {
		return err
	}

	chat := func(ctx context.Context, req vigil.ChatRequest, onFrame func(vigil.Frame)) error {
		_, err := assistant.Ask(ctx, provider, req, assistant.WithFrameHandler(onFrame))
		return err
	}

	snapshot := func() tui.Snapshot {
		snap := tui.Snapshot{Status: mgr.Status()}
		if latest := proc.Latest(1); len(latest) > 0 {
			v := latest[0]
			snap.HeartRate = v.HeartRate
			snap.SpO2 = v.BloodOxygen
			snap.Temperature = v.BodyTemperature
			snap.Systolic = v.Systolic
			snap.Diastolic = v.Diastolic
		}
		return snap
	}

	return tui.Run(cmd.Context(), tui.New(chat, snapshot, vigil.DefaultTheme()))
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := serial.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Printf("%s\t%s\n", p.Name, p.Description)
	}
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	provider, err := resolveProvider(cmd.Context(), cfg.Providers, logger)
	if err != nil {
		return err
	}

	req := vigil.ChatRequest{
		Messages: []vigil.ChatMessage{{Role: vigil.RoleUser, Content: args[0]}},
	}
	final, err := assistant.Ask(cmd.Context(), provider, req)
	if err != nil {
		return err
	}

	if final.Reasoning != "" {
		dim := lipgloss.NewStyle().Faint(true)
		fmt.Fprintln(os.Stderr, dim.Render(final.Reasoning))
	}
	fmt.Println(final.Visible)
	return nil
}
