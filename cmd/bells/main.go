package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rowjay/bell-schedule/internal/app"
	"github.com/rowjay/bell-schedule/internal/config"
	"github.com/rowjay/bell-schedule/internal/daytype"
	"github.com/rowjay/bell-schedule/internal/logging"
	"github.com/rowjay/bell-schedule/internal/state"
	"github.com/rowjay/bell-schedule/internal/timeofday"
)

type rootFlags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

type overrideFlags struct {
	State      string
	StatePath  string
	DayTypeURL string
}

func main() {
	root := &rootFlags{}
	overrides := &overrideFlags{}

	rootCmd := &cobra.Command{
		Use:           "bells",
		Short:         "School bell schedule: what period is it and how long is left",
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&root.ConfigPath, "config", "", "Path to config file (yaml/toml/json or .enc)")
	rootCmd.PersistentFlags().StringVar(&root.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&root.LogFormat, "log-format", "", "Log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&overrides.State, "state", "", "State backend (file, sqlite, redis, s3, memory)")
	rootCmd.PersistentFlags().StringVar(&overrides.StatePath, "state-path", "", "State file or sqlite database path")
	rootCmd.PersistentFlags().StringVar(&overrides.DayTypeURL, "daytype-url", "", "Day type service URL")

	rootCmd.AddCommand(newNowCmd(root, overrides))
	rootCmd.AddCommand(newShowCmd(root, overrides))
	rootCmd.AddCommand(newSetCmd(root, overrides))
	rootCmd.AddCommand(newGetCmd(root, overrides))
	rootCmd.AddCommand(newUpdateDayCmd(root, overrides))
	rootCmd.AddCommand(newValidateCmd(root, overrides))
	rootCmd.AddCommand(newStateCmd(root, overrides))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles what every command needs. close releases the state store.
type session struct {
	app    *app.App
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *session) close() {
	s.cancel()
	if err := s.app.Store.Close(); err != nil {
		s.app.Log.Warn().Err(err).Msg("close state store")
	}
}

func openSession(root *rootFlags, overrides *overrideFlags, clock timeofday.Clock) (*session, error) {
	cfg, err := loadConfig(root, overrides)
	if err != nil {
		return nil, err
	}
	logger := logging.Configure(cfg.Global)
	store, err := state.New(cfg.State)
	if err != nil {
		return nil, err
	}
	days := daytype.New(cfg.DayType.URL, cfg.DayType.Timeout)
	appSvc, err := app.New(cfg, store, days, clock, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Global.OperationTimeout)
	return &session{app: appSvc, ctx: ctx, cancel: cancel}, nil
}

func newNowCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:       "now middle|high",
		Short:     "Show the current period and the time left in it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{app.SchoolMiddle, app.SchoolHigh},
		RunE: func(cmd *cobra.Command, args []string) error {
			var clock timeofday.Clock = timeofday.SystemClock{}
			if at != "" {
				minutes, err := timeofday.Parse(at)
				if err != nil {
					return err
				}
				clock = timeofday.At(float64(minutes))
			}
			s, err := openSession(root, overrides, clock)
			if err != nil {
				return err
			}
			defer s.close()

			res, err := s.app.Now(s.ctx, args[0])
			if err != nil {
				return err
			}
			if !res.InSession {
				fmt.Println("No class right now")
				return nil
			}
			p := res.Current.Period
			start, _ := timeofday.Format(float64(p.Start), timeofday.HoursMinutes)
			end, _ := timeofday.Format(float64(p.End), timeofday.HoursMinutes)
			left, _ := timeofday.Format(res.Current.TimeLeft, timeofday.MinutesSeconds)
			fmt.Printf("%s\t%s-%s\t%s left\n", p.Name, start, end, left)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Resolve at this time (H:MM) instead of now")
	return cmd
}

func newShowCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "show middle|high",
		Short:     "Print the selected time sheet",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{app.SchoolMiddle, app.SchoolHigh},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			ts, err := s.app.Sheet(s.ctx, args[0])
			if err != nil {
				return err
			}
			for _, p := range ts.Periods() {
				start, _ := timeofday.Format(float64(p.Start), timeofday.HoursMinutes)
				end, _ := timeofday.Format(float64(p.End), timeofday.HoursMinutes)
				fmt.Printf("%s-%s\t%s\n", start, end, p.Name)
			}
			return nil
		},
	}
}

func newSetCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the stored schedule selections",
	}

	var middleSchedule, middleGrade int
	middle := &cobra.Command{
		Use:   "middle",
		Short: "Select the middle-school schedule and grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if cmd.Flags().Changed("schedule") {
				if err := s.app.Middle.SetSchedule(s.ctx, middleSchedule); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("grade") {
				if err := s.app.Middle.SetGrade(s.ctx, middleGrade); err != nil {
					return err
				}
			}
			s.app.Log.Info().Msg("middle school selection saved")
			return nil
		},
	}
	middle.Flags().IntVar(&middleSchedule, "schedule", 0, "Schedule index")
	middle.Flags().IntVar(&middleGrade, "grade", 0, "Grade track (lunch variant) index")

	var highSchedule, highDay, lunchA, lunchB int
	high := &cobra.Command{
		Use:   "high",
		Short: "Select the high-school schedule, day and lunches",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			flags := cmd.Flags()
			if flags.Changed("schedule") {
				if err := s.app.High.SetSchedule(s.ctx, highSchedule); err != nil {
					return err
				}
			}
			if flags.Changed("day") {
				if err := s.app.High.SetDay(s.ctx, highDay); err != nil {
					return err
				}
			}
			if flags.Changed("lunch-a") {
				if err := s.app.High.SetLunch(s.ctx, 0, lunchA); err != nil {
					return err
				}
			}
			if flags.Changed("lunch-b") {
				if err := s.app.High.SetLunch(s.ctx, 1, lunchB); err != nil {
					return err
				}
			}
			s.app.Log.Info().Msg("high school selection saved")
			return nil
		},
	}
	high.Flags().IntVar(&highSchedule, "schedule", 0, "Schedule index")
	high.Flags().IntVar(&highDay, "day", 0, "Day type (0 = A, 1 = B)")
	high.Flags().IntVar(&lunchA, "lunch-a", 0, "Lunch wave index on A days")
	high.Flags().IntVar(&lunchB, "lunch-b", 0, "Lunch wave index on B days")

	cmd.AddCommand(middle, high)
	return cmd
}

func newGetCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print every stored selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			values, err := s.app.Selections(s.ctx)
			if err != nil {
				return err
			}
			for _, key := range sortedKeys(values) {
				v := values[key]
				if v == "" {
					v = "(unset)"
				}
				fmt.Printf("%s\t%s\n", key, v)
			}
			return nil
		},
	}
}

func newUpdateDayCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update-day",
		Short: "Fetch today's A/B day from the district calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			day, err := s.app.UpdateDay(s.ctx)
			if err != nil {
				return err
			}
			fmt.Printf("day %s\n", []string{"A", "B"}[day])
			return nil
		},
	}
}

func newValidateCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.app.Validate(s.ctx); err != nil {
				return err
			}
			s.app.Log.Info().Msg("validation succeeded")
			return nil
		},
	}
}

func newStateCmd(root *rootFlags, overrides *overrideFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Back up and restore stored selections",
	}

	var out, compression string
	var encrypt bool
	export := &cobra.Command{
		Use:   "export",
		Short: "Write all selections to a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if compression == "" {
				compression = compressionFromPath(out)
			}
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			opts := app.SnapshotOptions{Compression: strings.ToLower(compression), Encrypt: encrypt || strings.HasSuffix(out, ".enc")}
			if _, err := s.app.ExportState(s.ctx, f, opts); err != nil {
				_ = f.Close()
				_ = os.Remove(out)
				return err
			}
			return f.Close()
		},
	}
	export.Flags().StringVar(&out, "out", "", "Snapshot file to write")
	export.Flags().StringVar(&compression, "compression", "", "Compression (none/gzip/zstd); guessed from the file name when empty")
	export.Flags().BoolVar(&encrypt, "encrypt", false, "Encrypt with state.state_key")

	var in, inCompression string
	var decrypt bool
	imp := &cobra.Command{
		Use:   "import",
		Short: "Restore selections from a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("--in is required")
			}
			if inCompression == "" {
				inCompression = compressionFromPath(in)
			}
			s, err := openSession(root, overrides, nil)
			if err != nil {
				return err
			}
			defer s.close()

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()
			opts := app.SnapshotOptions{Compression: strings.ToLower(inCompression), Encrypt: decrypt || strings.HasSuffix(in, ".enc")}
			_, err = s.app.ImportState(s.ctx, f, opts)
			return err
		},
	}
	imp.Flags().StringVar(&in, "in", "", "Snapshot file to read")
	imp.Flags().StringVar(&inCompression, "compression", "", "Compression (none/gzip/zstd); guessed from the file name when empty")
	imp.Flags().BoolVar(&decrypt, "decrypt", false, "Decrypt with state.state_key")

	cmd.AddCommand(export, imp)
	return cmd
}

func newConfigCmd() *cobra.Command {
	var input string
	var output string
	var key string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Config utilities",
	}

	encrypt := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || key == "" {
				return fmt.Errorf("--input and --key are required")
			}
			return config.EncryptConfigFile(input, output, key)
		},
	}
	encrypt.Flags().StringVar(&input, "input", "", "Input config file")
	encrypt.Flags().StringVar(&output, "output", "", "Output encrypted config file (default: input + .enc)")
	encrypt.Flags().StringVar(&key, "key", "", "Encryption key (base64 or hex)")

	cmd.AddCommand(encrypt)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(versionString())
		},
	}
}

func loadConfig(root *rootFlags, overrides *overrideFlags) (*config.Config, error) {
	cfg, err := config.Load(root.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, root, overrides)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, root *rootFlags, overrides *overrideFlags) {
	if root.LogLevel != "" {
		cfg.Global.LogLevel = root.LogLevel
	}
	if root.LogFormat != "" {
		cfg.Global.LogFormat = root.LogFormat
	}

	if overrides.State != "" {
		cfg.State.Backend = overrides.State
	}
	cfg.State.Backend = strings.ToLower(cfg.State.Backend)
	if overrides.StatePath != "" {
		switch cfg.State.Backend {
		case "sqlite", "sqlite3":
			cfg.State.SQLite.Path = overrides.StatePath
		default:
			cfg.State.File.Path = overrides.StatePath
		}
	}
	if overrides.DayTypeURL != "" {
		cfg.DayType.URL = overrides.DayTypeURL
	}
}
