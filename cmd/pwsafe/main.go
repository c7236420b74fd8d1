package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"pwsafe/internal/app"
	"pwsafe/internal/config"
	"pwsafe/internal/safe"
	"pwsafe/internal/terminal"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Read", "Write").
// A missing config file is not an error: defaults cover first use.
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		cfg = &config.Config{}
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// parseLength interprets an optional length argument. Non-numeric or missing
// input falls back to 0, which the generator maps to its default length.
func parseLength(args []string, index int) int {
	if len(args) <= index {
		return 0
	}
	n, err := strconv.Atoi(args[index])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// runRead backs both the root command and the read subcommand.
func runRead(args []string) error {
	username := ""
	if len(args) > 0 {
		username = args[0]
	}

	a, err := newApp("Read")
	if err != nil {
		return err
	}
	defer a.Close()

	passphrase, err := terminal.ReadPassphrase("Passphrase: ")
	if err != nil {
		return err
	}

	lines, err := a.Read(passphrase, username)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		fmt.Println("No entries found.")
		return nil
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "pwsafe [username]",
	Short: "Local encrypted password safe",
	Long: "pwsafe keeps username/password records in a single encrypted file.\n" +
		"Run with no subcommand to read entries.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRead(args)
	},
}

var readCmd = &cobra.Command{
	Use:     "read [username]",
	Aliases: []string{"r"},
	Short:   "Show entries (all, or for one username)",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRead(args)
	},
}

var writeCmd = &cobra.Command{
	Use:     "write USERNAME [length]",
	Aliases: []string{"w"},
	Short:   "Store an entry with a generated password",
	Long: "Stores an entry for USERNAME, replacing any previous ones. The password\n" +
		"is randomly generated (length characters, default 50) and printed once.\n" +
		"With --manual the password is prompted for instead; entering an empty\n" +
		"password clears the entry.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		manual, _ := cmd.Flags().GetBool("manual")
		quiet, _ := cmd.Flags().GetBool("quiet")
		username := args[0]

		a, err := newApp("Write")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := terminal.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		var password string
		if manual {
			password, err = terminal.ReadSecret("Password (empty clears the entry): ")
			if err != nil {
				return err
			}
		} else {
			password, err = a.Generate(parseLength(args, 1))
			if err != nil {
				return err
			}
		}

		if err := a.Write(passphrase, safe.Entry{Username: username, Password: password}); err != nil {
			return err
		}

		if password == "" {
			fmt.Printf("Cleared entry for %s\n", username)
			return nil
		}
		if !manual && !quiet {
			fmt.Printf("%s %s\n", password, username)
		}
		fmt.Printf("Stored entry for %s\n", username)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete USERNAME",
	Aliases: []string{"d"},
	Short:   "Remove all entries for a username",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		a, err := newApp("Delete")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := terminal.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		if err := a.Delete(passphrase, username); err != nil {
			return err
		}

		fmt.Printf("Deleted entries for %s\n", username)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:     "generate [length]",
	Aliases: []string{"g"},
	Short:   "Print a random password without touching the safe",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Generate")
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := a.Generate(parseLength(args, 0))
		if err != nil {
			return err
		}

		fmt.Println(password)
		return nil
	},
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

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Safe: %s\n", cfg.SafePath)
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
		fmt.Printf("Safe:    %s\n", cfg.SafePath)
		fmt.Printf("Log Dir: %s\n", cfg.LogDir)
		fmt.Printf("Cipher:  %s\n", cfg.Cipher.Type)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	writeCmd.Flags().Bool("manual", false, "Prompt for the password instead of generating one")
	writeCmd.Flags().BoolP("quiet", "q", false, "Do not print the generated password")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
}
