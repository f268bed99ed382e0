// Command outpost serves external capabilities (Python execution and
// weather forecasts) to LLM agents over MCP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/outpost-mcp/outpost"
	"github.com/outpost-mcp/outpost/internal/config"
	"github.com/outpost-mcp/outpost/internal/history"
	"github.com/outpost-mcp/outpost/internal/metrics"
	outmcp "github.com/outpost-mcp/outpost/internal/mcp"
	"github.com/outpost-mcp/outpost/internal/python"
	"github.com/outpost-mcp/outpost/internal/runner"
	"github.com/outpost-mcp/outpost/internal/weather"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("outpost: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "mcp":
		err = mcpMain(args)
	case "run":
		err = runMain(args)
	case "forecast":
		err = forecastMain(args)
	case "version":
		fmt.Println(outpost.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "outpost: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: outpost <command> [flags]

Commands:
  mcp         Start the MCP server (stdio by default)
  run         Execute Python code and print the result
  forecast    Fetch a weather forecast and print it as JSON
  version     Print the version
  help        Show this help

Use "outpost <command> -h" for command-specific flags.`)
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090); also serves /metrics")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(outmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return serve(ctx, *httpAddr)
}

func serve(ctx context.Context, httpAddr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := history.NewLRUStore(cfg.HistorySize(), history.NewDiskStore())
	server := outmcp.NewServer(newExecutor(cfg, 0), newWeatherClient(cfg), store)

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fileFlag := fs.String("file", "", "read code from file instead of the command line")
	jsonFlag := fs.Bool("json", false, "output the result as JSON")
	timeoutFlag := fs.Duration("timeout", 0, "override configured timeout (e.g. 30s)")
	_ = fs.Parse(args)

	code, err := readCode(*fileFlag, fs.Args())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res := newExecutor(cfg, *timeoutFlag).Execute(ctx, code)

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printRun(res)
	}

	if res.IsError() || !res.Success {
		os.Exit(1)
	}
	return nil
}

func readCode(file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading code file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no code given: pass it as an argument or via -file")
	}
	return strings.Join(args, " "), nil
}

func printRun(res *python.Result) {
	if res.IsError() {
		fmt.Fprintln(os.Stderr, res.Error)
		return
	}
	fmt.Print(res.Stdout)
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}
	if !res.Success {
		fmt.Fprintf(os.Stderr, "exit code %d\n", res.ExitCode)
	}
}

// --- forecast ---

func forecastMain(args []string) error {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	latFlag := fs.Float64("lat", 0, "latitude in decimal degrees")
	lonFlag := fs.Float64("lon", 0, "longitude in decimal degrees")
	daysFlag := fs.Int("days", 0, "forecast days, 1-14 (default from config)")
	dailyFlag := fs.String("daily", "", "comma-separated daily variables (default from config)")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var daily []string
	if *dailyFlag != "" {
		daily = strings.Split(*dailyFlag, ",")
	}

	f, err := newWeatherClient(cfg).Forecast(ctx, weather.Params{
		Latitude:     *latFlag,
		Longitude:    *lonFlag,
		ForecastDays: *daysFlag,
		Daily:        daily,
	})
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// --- shared ---

func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newExecutor(cfg *config.Config, timeoutOverride time.Duration) *python.Executor {
	timeout := cfg.Timeout()
	if timeoutOverride > 0 {
		timeout = timeoutOverride
	}
	return &python.Executor{
		Binary: cfg.PythonBinary(),
		Runner: &runner.Runner{
			Timeout:   timeout,
			MaxOutput: cfg.MaxOutputBytes(),
		},
	}
}

func newWeatherClient(cfg *config.Config) *weather.Client {
	return weather.NewClient(cfg.Weather.URL, cfg.ForecastDays(), cfg.DailyVariables())
}
