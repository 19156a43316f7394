package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jominki354/maulwurf/internal/app"
	"github.com/jominki354/maulwurf/internal/config"
	"github.com/jominki354/maulwurf/internal/fileaccess"
	"github.com/jominki354/maulwurf/internal/gcode"
	"github.com/jominki354/maulwurf/internal/timeline"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config, creates an App, and hydrates the timeline.
// The caller must defer a.Close(). operation identifies the CLI command
// being run (e.g. "Import", "Cleanup").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	if _, err := a.Hydrate(); err != nil {
		a.Close()
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}

	return a, nil
}

// parseID parses a snapshot id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot id: %s", arg)
	}
	return id, nil
}

// readPassphrase prompts for a passphrase without echo when stdin is a
// terminal.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(data), nil
	}

	var pass string
	if _, err := fmt.Scanln(&pass); err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return pass, nil
}

var rootCmd = &cobra.Command{
	Use:   "maulwurf",
	Short: "CNC G-code editor with snapshot timeline",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(uuid.New().String(), defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("App ID:              %s\n", cfg.AppID)
		fmt.Printf("Base Dir:            %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:             %s\n", cfg.LogDir)
		fmt.Printf("Snapshot Dir:        %s\n", cfg.Persistence.Dir)
		fmt.Printf("Auto Interval:       %ds\n", cfg.Timeline.MinAutoIntervalSecs)
		fmt.Printf("Debounce:            %dms\n", cfg.Timeline.DebounceMillis)
		fmt.Printf("Max Auto Snapshots:  %d\n", cfg.Timeline.MaxAutoSnapshots)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var configKeysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an encryption key pair for exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetupEncryption")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		if err := a.SetupEncryption(pass); err != nil {
			a.MarkFailed()
			return fmt.Errorf("setting up encryption: %w", err)
		}

		fmt.Println("Encryption keys generated.")
		return nil
	},
}

// timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Manage the snapshot timeline",
}

var timelineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots grouped by file",
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, _ := cmd.Flags().GetString("tab")

		a, err := newApp("ListSnapshots")
		if err != nil {
			return err
		}
		defer a.Close()

		if tabID != "" {
			snaps := a.ForTab(tabID)
			if len(snaps) == 0 {
				fmt.Println("No snapshots.")
				return nil
			}
			for _, s := range snaps {
				fmt.Printf("%d  %s  %-7s  %s\n",
					s.ID, s.Timestamp.Format("2006-01-02 15:04:05"), s.Type, s.Description)
			}
			return nil
		}

		groups := a.Groups()
		if len(groups) == 0 {
			fmt.Println("No snapshots.")
			return nil
		}

		for _, g := range groups {
			fmt.Printf("%s  (%s, %d snapshot(s))\n", g.FileName, g.TabID, len(g.Snapshots))
			for i := len(g.Snapshots) - 1; i >= 0; i-- {
				s := g.Snapshots[i]
				fmt.Printf("  %d  %s  %-7s  %s\n",
					s.ID, s.Timestamp.Format("2006-01-02 15:04:05"), s.Type, s.Description)
			}
		}
		return nil
	},
}

var timelineShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a snapshot's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("ShowSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		snap, ok := a.Snapshot(id)
		if !ok {
			return fmt.Errorf("no snapshot with id %d", id)
		}

		fmt.Printf("ID:        %d\n", snap.ID)
		fmt.Printf("Time:      %s\n", snap.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("Type:      %s\n", snap.Type)
		fmt.Printf("File:      %s\n", snap.FileName)
		if snap.FilePath != "" {
			fmt.Printf("Path:      %s\n", snap.FilePath)
		}
		if len(snap.Tags) > 0 {
			fmt.Printf("Tags:      %v\n", snap.Tags)
		}
		fmt.Printf("Size:      %+d byte(s) vs previous\n", snap.SizeDelta())
		fmt.Printf("\n%s\n", snap.Content)
		return nil
	},
}

var timelineDiffCmd = &cobra.Command{
	Use:   "diff ID_A ID_B",
	Short: "Compare two snapshots line by line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idA, err := parseID(args[0])
		if err != nil {
			return err
		}
		idB, err := parseID(args[1])
		if err != nil {
			return err
		}

		a, err := newApp("CompareSnapshots")
		if err != nil {
			return err
		}
		defer a.Close()

		diff := a.Diff(idA, idB)
		if diff == "" {
			fmt.Println("No differences.")
			return nil
		}
		fmt.Println(diff)
		return nil
	},
}

var timelineExportCmd = &cobra.Command{
	Use:   "export ID [DEST]",
	Short: "Export a snapshot's content to a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		dest := ""
		if len(args) > 1 {
			dest = args[1]
		}

		a, err := newApp("ExportSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Export(id, dest, encrypt)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if path == "" {
			fmt.Println("Export cancelled.")
			return nil
		}

		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

var timelineImportCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Import a file as a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypted, _ := cmd.Flags().GetBool("encrypted")

		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		var snap *timeline.Snapshot
		if encrypted {
			pass, err := readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			s, err := a.ImportEncrypted(args[0], pass)
			if err != nil {
				a.MarkFailed()
				return fmt.Errorf("import failed: %w", err)
			}
			snap = s
		} else {
			s, err := a.Import(args[0])
			if err != nil {
				a.MarkFailed()
				return fmt.Errorf("import failed: %w", err)
			}
			snap = s
		}

		if snap == nil {
			fmt.Println("Import cancelled.")
			return nil
		}

		fmt.Printf("Imported %s as snapshot %d\n", snap.FileName, snap.ID)
		return nil
	},
}

var timelineRestoreCmd = &cobra.Command{
	Use:   "restore ID",
	Short: "Restore a snapshot into the editor buffer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.Restore(id)
		if err != nil {
			a.MarkFailed()
			return fmt.Errorf("restore failed: %w", err)
		}
		if snap == nil {
			fmt.Printf("No snapshot with id %d\n", id)
			return nil
		}

		fmt.Printf("Restored snapshot %d (%s)\n", snap.ID, snap.FileName)
		return nil
	},
}

var timelineDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("DeleteSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Delete(id); err != nil {
			a.MarkFailed()
			return fmt.Errorf("delete failed: %w", err)
		}

		fmt.Printf("Deleted snapshot %d\n", id)
		return nil
	},
}

var timelineCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Evict the oldest auto-snapshots over the retention cap",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Cleanup")
		if err != nil {
			return err
		}
		defer a.Close()

		evicted, err := a.Cleanup()
		if err != nil {
			a.MarkFailed()
			return fmt.Errorf("cleanup failed: %w", err)
		}

		fmt.Printf("Evicted %d snapshot(s)\n", evicted)
		return nil
	},
}

var timelineClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all snapshots, or one tab's with --tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, _ := cmd.Flags().GetString("tab")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			return fmt.Errorf("clear cannot be undone; re-run with --yes to confirm")
		}

		a, err := newApp("ClearSnapshots")
		if err != nil {
			return err
		}
		defer a.Close()

		if tabID != "" {
			if err := a.ClearTab(tabID); err != nil {
				a.MarkFailed()
				return fmt.Errorf("clear failed: %w", err)
			}
			fmt.Printf("Cleared snapshots for tab %s\n", tabID)
			return nil
		}

		if err := a.ClearAll(); err != nil {
			a.MarkFailed()
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Println("Cleared all snapshots.")
		return nil
	},
}

// open command
var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a file, recording an open snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !fileaccess.IsGCodeFile(args[0]) {
			fmt.Printf("Note: %s does not have a recognized G-code extension.\n", args[0])
		}

		a, err := newApp("OpenFile")
		if err != nil {
			return err
		}
		defer a.Close()

		tab, err := a.OpenFile(args[0])
		if err != nil {
			a.MarkFailed()
			return fmt.Errorf("open failed: %w", err)
		}
		if tab == nil {
			fmt.Println("Open cancelled.")
			return nil
		}

		fmt.Printf("Opened %s (tab %s)\n", tab.Name, tab.ID)
		return nil
	},
}

// browse command
var browseCmd = &cobra.Command{
	Use:   "browse [PATH]",
	Short: "List a directory's subdirectories and files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := fileaccess.NewOSFileAccess()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			var err error
			path, err = files.ShowOpenFolderDialog()
			if err != nil {
				return fmt.Errorf("showing folder dialog: %w", err)
			}
			if path == "" {
				fmt.Println("Browse cancelled.")
				return nil
			}
		}

		entries, err := files.ListDir(path)
		if err != nil {
			return fmt.Errorf("browse failed: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("Empty directory.")
			return nil
		}

		for _, e := range entries {
			switch {
			case e.IsDir:
				fmt.Printf("%s/\n", e.Name)
			case fileaccess.IsGCodeFile(e.Name):
				fmt.Printf("%s  [G-code]\n", e.Name)
			default:
				fmt.Println(e.Name)
			}
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("History")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				d := op.FinishedAt.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-15s  %s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

// describe command
var describeCmd = &cobra.Command{
	Use:   "describe CODE_OR_LINE",
	Short: "Explain G-code and M-code words",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			defs := gcode.DescribeLine(arg)
			if len(defs) == 0 {
				if def, ok := gcode.Find(arg); ok {
					defs = []gcode.Definition{def}
				}
			}
			if len(defs) == 0 {
				fmt.Printf("%s: unknown code\n", arg)
				continue
			}
			for _, def := range defs {
				brand := ""
				if def.Brand != "" {
					brand = "  [" + def.Brand + "]"
				}
				fmt.Printf("%-4s  %s: %s%s\n", def.Code, def.Description, def.Details, brand)
			}
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.AddCommand(configKeysInitCmd)

	// timeline subcommands
	timelineCmd.AddCommand(timelineListCmd)
	timelineListCmd.Flags().String("tab", "", "List only this tab's snapshots")
	timelineCmd.AddCommand(timelineShowCmd)
	timelineCmd.AddCommand(timelineDiffCmd)
	timelineCmd.AddCommand(timelineExportCmd)
	timelineExportCmd.Flags().Bool("encrypt", false, "Encrypt the export for the configured key")
	timelineCmd.AddCommand(timelineImportCmd)
	timelineImportCmd.Flags().Bool("encrypted", false, "Decrypt an encrypted export before importing")
	timelineCmd.AddCommand(timelineRestoreCmd)
	timelineCmd.AddCommand(timelineDeleteCmd)
	timelineCmd.AddCommand(timelineCleanupCmd)
	timelineCmd.AddCommand(timelineClearCmd)
	timelineClearCmd.Flags().String("tab", "", "Clear only this tab's snapshots")
	timelineClearCmd.Flags().BoolP("yes", "y", false, "Confirm the clear")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(describeCmd)
}
