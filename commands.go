package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tds-assistant/domain"
	httpLayer "tds-assistant/http"
	"tds-assistant/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.close()

	rateLimiter := httpLayer.NewRateLimiter(a.cfg.RateLimit.Requests, a.cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.Handlers{
		Calculation: httpLayer.NewCalculationHandler(a.calculator, logger),
		Water:       httpLayer.NewWaterHandler(a.water, a.ai, logger),
		Chat:        httpLayer.NewChatHandler(a.newSession(logger), logger),
		Settings:    httpLayer.NewSettingsHandler(a.settings, logger),
		Learning:    httpLayer.NewLearningHandler(a.learning, logger),
	}, rateLimiter, logger)

	server := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening",
			zap.String("addr", a.cfg.Server.Addr),
			zap.String("variant", string(a.variant)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}

var (
	calcIncome     string
	calc80C        string
	calcOther      string
	calcJSONOutput bool
)

var calcCmd = &cobra.Command{
	Use:     "calc",
	Short:   "Calculate income-tax TDS for one set of inputs",
	Example: `  tds-assistant calc --income 1000000 --deduction-80c 150000 --other 50000`,
	RunE:    runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcIncome, "income", "", "annual gross income")
	calcCmd.Flags().StringVar(&calc80C, "deduction-80c", "", "deductions under section 80C")
	calcCmd.Flags().StringVar(&calcOther, "other", "", "other deductions")
	calcCmd.Flags().BoolVar(&calcJSONOutput, "json", false, "print the full report as JSON")
}

func runCalc(cmd *cobra.Command, args []string) error {
	calc := service.NewCalculatorService(service.NewIncomeTaxEngine(), logger)

	report, err := calc.CalculateText(calcIncome, calc80C, calcOther)
	if err != nil {
		return err
	}
	if calcJSONOutput {
		return printJSON(cmd, report)
	}

	out := cmd.OutOrStdout()
	r := report.Result
	fmt.Fprintf(out, "Taxable income:  %s\n", formatAmount(r.AdjustedBase))
	for _, b := range r.Breakdown {
		fmt.Fprintf(out, "  %-26s %14s @ %4.0f%% = %s\n", b.Label, formatAmount(b.Absorbed), b.Rate*100, formatAmount(b.Produced))
	}
	fmt.Fprintf(out, "Tax:             %s\n", formatAmount(r.BandTotal))
	fmt.Fprintf(out, "Cess (4%%):       %s\n", formatAmount(r.Surcharge))
	fmt.Fprintf(out, "Net tax:         %s\n", formatAmount(r.GrandTotal))
	fmt.Fprintf(out, "Monthly TDS:     %s\n", formatAmount(r.MonthlyFigure))
	fmt.Fprintf(out, "Efficiency:      %.0f%% (%s)\n", report.EfficiencyScore, report.EfficiencyRating)
	fmt.Fprintln(out, "Recommendations:")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(out, "  • %s\n", rec)
	}
	return nil
}

var (
	waterConductivity string
	waterTemperature  string
	waterFactor       string
	waterType         string
	waterNoCorrection bool
	waterAnalyze      bool
)

var waterCmd = &cobra.Command{
	Use:     "water",
	Short:   "Convert a conductivity reading into TDS (ppm)",
	Example: `  tds-assistant water --conductivity 500 --temperature 25 --type "Drinking Water"`,
	RunE:    runWater,
}

func init() {
	waterCmd.Flags().StringVar(&waterConductivity, "conductivity", "", "electrical conductivity in µS/cm")
	waterCmd.Flags().StringVar(&waterTemperature, "temperature", "", "water temperature in °C (default 25)")
	waterCmd.Flags().StringVar(&waterFactor, "factor", "", "conversion factor (default 0.64)")
	waterCmd.Flags().StringVar(&waterType, "type", "", "named water type instead of --factor")
	waterCmd.Flags().BoolVar(&waterNoCorrection, "no-correction", false, "skip temperature correction")
	waterCmd.Flags().BoolVar(&waterAnalyze, "analyze", false, "ask the assistant for an analysis")
}

func runWater(cmd *cobra.Command, args []string) error {
	input := domain.WaterInput{
		CalculationInput: domain.CalculationInput{
			Primary:     service.ParseAmount(waterConductivity),
			Adjustment1: service.ParseAmountOr(waterTemperature, service.BaselineTemperature),
			Adjustment2: service.ParseAmountOr(waterFactor, service.DefaultWaterFactor),
		},
		TemperatureCorrection: !waterNoCorrection,
	}
	if waterType != "" {
		factor, ok := service.WaterTypeFactor(waterType)
		if !ok {
			return fmt.Errorf("unknown water type %q", waterType)
		}
		input.Adjustment2 = factor
	}

	result, err := service.NewWaterService(logger).Measure(input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "TDS:           %.0f ppm\n", result.TDS)
	fmt.Fprintf(out, "Quality:       %s (%s)\n", result.Quality.Label, result.Quality.Description)
	fmt.Fprintf(out, "EC at 25°C:    %.1f µS/cm\n", result.CompensatedConductivity)

	if waterAnalyze {
		ctx := cmd.Context()
		a, err := newApp(ctx, logger)
		if err != nil {
			return err
		}
		defer a.close()
		fmt.Fprintf(out, "\n%s\n", a.ai.AnalyzeWater(ctx, result))
	}
	return nil
}

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the assistant; without arguments starts an interactive session",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	session := a.newSession(logger)
	unsubscribe := session.Subscribe(func(turn domain.ConversationTurn) {
		if !turn.FromUser {
			fmt.Fprintf(out, "\n%s\n\n", turn.Text)
		}
	})
	defer unsubscribe()

	if len(args) > 0 {
		_, err := session.Send(ctx, strings.Join(args, " "))
		return err
	}

	fmt.Fprintf(out, "%s\n(type /clear to reset, /quit to leave)\n\n", a.variant.Greeting())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/clear":
			session.Clear()
			fmt.Fprintln(out, "Chat cleared.")
			continue
		}

		reqCtx, cancel := context.WithTimeout(ctx, a.cfg.AI.Timeout+5*time.Second)
		_, err := session.Send(reqCtx, line)
		cancel()
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

var (
	settingsTheme         string
	settingsNotifications string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored preferences",
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "theme mode: LIGHT, DARK or SYSTEM")
	settingsCmd.Flags().StringVar(&settingsNotifications, "notifications", "", "enable notifications: true or false")
}

func runSettings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.close()

	if settingsTheme != "" {
		if err := a.settings.SetThemeMode(ctx, domain.ThemeMode(settingsTheme)); err != nil {
			return err
		}
	}
	if settingsNotifications != "" {
		enabled, err := strconv.ParseBool(settingsNotifications)
		if err != nil {
			return fmt.Errorf("invalid --notifications value %q", settingsNotifications)
		}
		if err := a.settings.SetNotificationsEnabled(ctx, enabled); err != nil {
			return err
		}
	}

	current, err := a.settings.Get(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, current)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatAmount prints a rupee amount with Indian digit grouping (12,34,567.89).
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		intPart = "-" + intPart
	}
	return "₹" + intPart + frac
}
