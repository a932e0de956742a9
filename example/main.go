package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/consolefriend/console"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Try the console line editor and menus.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool("debug") {
				console.SetLogger(log.NewWithOptions(os.Stderr, log.Options{
					Prefix:          "console",
					Level:           log.DebugLevel,
					ReportTimestamp: true,
				}))
			}
		},
	}

	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newMenuCmd())

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	cmd.PersistentFlags().String("prompt", "", "prompt shown before the input line")
	cmd.PersistentFlags().Bool("debug", false, "log debug records to stderr")

	viper.BindPFlag("prompt", cmd.PersistentFlags().Lookup("prompt"))
	viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	viper.SetEnvPrefix("CONSOLE")
	viper.AutomaticEnv()

	return cmd
}

// loadConfig reads the config file, if any, and applies flag and
// environment overrides on top of it.
func loadConfig() (*console.Config, error) {
	cfg := console.DefaultConfig()
	if cfgFile != "" {
		loaded, err := console.LoadConfig(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if prompt := viper.GetString("prompt"); prompt != "" {
		cfg.Prompt = prompt
	}
	return cfg, nil
}

func openConsole() (*console.Console, *console.VTTerminal, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	term, err := console.NewVTTerminal()
	if err != nil {
		return nil, nil, err
	}
	return console.New(term, console.WithConfig(cfg)), term, nil
}

type command struct {
	min, max int
	usage    string
	run      func(c *console.Console, args []string) bool
}

func newCommands() map[string]command {
	commands := map[string]command{
		"echo": {
			min: 1, max: 8, usage: "echo *words*",
			run: func(c *console.Console, args []string) bool {
				c.Write(strings.Join(args, " "))
				return true
			},
		},
		"pick": {
			usage: "pick",
			run: func(c *console.Console, args []string) bool {
				runPick(c)
				return true
			},
		},
		"history": {
			usage: "history",
			run: func(c *console.Console, args []string) bool {
				for i, entry := range c.History().Entries() {
					c.Write(fmt.Sprintf("%d\t*%s*", i+1, entry))
				}
				return true
			},
		},
		"exit": {
			usage: "exit",
			run: func(c *console.Console, args []string) bool {
				return false
			},
		},
	}
	commands["help"] = command{
		usage: "help",
		run: func(c *console.Console, args []string) bool {
			for _, name := range commandNames(commands) {
				c.Write("@" + commands[name].usage + "@")
			}
			c.Write(c.KeyHelp())
			return true
		},
	}
	return commands
}

func commandNames(commands map[string]command) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read commands until exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, term, err := openConsole()
			if err != nil {
				return err
			}
			defer term.Close()

			commands := newCommands()
			c.SetCommands(commandNames(commands)...)
			c.Write("Type *help* to list commands.")
			for {
				line, err := c.GetCommand()
				if err != nil {
					return err
				}
				fields := strings.Fields(line)
				if len(fields) == 0 {
					continue
				}
				name, rest := fields[0], fields[1:]
				entry, ok := commands[name]
				if !ok {
					c.WriteError(fmt.Sprintf("Unknown command *%s*.", name))
					continue
				}
				if !c.VerifyArgCount(name, entry.min, entry.max, len(rest)) {
					continue
				}
				if !entry.run(c, rest) {
					return nil
				}
			}
		},
	}
}

func runPick(c *console.Console) {
	options := []string{"Apples", "Pears", "Plums", "Cherries"}
	counts := make([]int, len(options))
	names := append([]string(nil), options...)
	choice, err := c.Menu("Pick a *fruit*, + adds one:", options,
		console.WithDoneLabel("Never mind"),
		console.WithKeyCallback(func(selected int, k console.Key) string {
			if k.String() != "+" || selected >= len(names) {
				return ""
			}
			counts[selected]++
			return fmt.Sprintf("%s (%d)", names[selected], counts[selected])
		}),
	)
	if err != nil {
		c.WriteError(err.Error())
		return
	}
	if choice < 0 || choice >= len(names) {
		c.Write("Nothing picked.")
		return
	}
	c.Write(fmt.Sprintf("Picked *%s*.", names[choice]))
}

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu [options...]",
		Short: "Show a menu that closes itself after a timeout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, term, err := openConsole()
			if err != nil {
				return err
			}
			defer term.Close()

			timeout := viper.GetDuration("timeout")
			timer := time.AfterFunc(timeout, func() {
				c.SignalMenuCancel(true)
			})
			defer timer.Stop()

			choice, err := c.Menu(fmt.Sprintf("Choose within @%s@:", timeout), args,
				console.WithDoneLabel("Cancel"))
			if err != nil {
				return fmt.Errorf("menu failed: %w", err)
			}
			// A timeout on the done row reports its index, one past the options.
			if choice < 0 || choice >= len(args) {
				c.Write("No choice.")
				return nil
			}
			c.Write(fmt.Sprintf("You chose *%s*.", args[choice]))
			return nil
		},
	}
	cmd.Flags().Duration("timeout", 10*time.Second, "cancel the menu after this long, keeping the highlighted option")
	viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	return cmd
}
