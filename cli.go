package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// inputFlags are shared by the commands that read input text
type inputFlags struct {
	input  string
	file   string
	output string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, "input", "", "Input text")
	cmd.Flags().StringVar(&f.file, "file", "", "Read input from a file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the result to a file instead of stdout")
}

// read returns the input text from --input, --file or stdin. A terminal on
// stdin gives empty input so that generators run without waiting.
func (f *inputFlags) read(stdin io.Reader) (string, error) {
	switch {
	case f.input != "" && f.file != "":
		return "", operr.Config("", "Use either --input or --file, not both.")
	case f.input != "":
		return f.input, nil
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	if file, ok := stdin.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// write stores the result in --output, or prints it
func (f *inputFlags) write(w io.Writer, result string) error {
	if f.output != "" {
		return os.WriteFile(f.output, []byte(result), 0644)
	}
	if result == "" {
		return nil
	}
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	_, err := io.WriteString(w, result)
	return err
}

// ============================================================================
// apply
// ============================================================================

var (
	applyFlags   inputFlags
	applyOptions string
)

var applyCmd = &cobra.Command{
	Use:   "apply <operation> [key=value...]",
	Short: "Run one utility",
	Long: `Run one utility over the input. Options are given as key=value pairs
or as a JSON object with --options; pairs win over the JSON object.`,
	Example: `  echo "Hello World" | textutils apply case-converter case=snake
  textutils apply password-generator length=24 count=3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyFlags.register(applyCmd)
	applyCmd.Flags().StringVar(&applyOptions, "options", "", "Options as a JSON object")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	options := map[string]any{}
	if applyOptions != "" {
		if err := json.Unmarshal([]byte(applyOptions), &options); err != nil {
			return operr.Config(args[0], "--options must be a JSON object: %s", err.Error())
		}
	}
	pairs, err := transform.ParseAssignments(args[1:])
	if err != nil {
		return err
	}
	for k, v := range pairs {
		options[k] = v
	}

	input, err := applyFlags.read(cmd.InOrStdin())
	if err != nil {
		return err
	}

	core := NewTextUtilsCore(cfg.Defaults)
	result, err := core.Apply(args[0], input, options)
	if err != nil {
		return err
	}
	return applyFlags.write(cmd.OutOrStdout(), result)
}

// ============================================================================
// pipeline
// ============================================================================

var pipelineFlags inputFlags

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <file.json>",
	Short: "Run a pipeline of utilities",
	Long: `Run a pipeline definition over the input. The file holds a JSON list
of steps, each {"operation": "...", "options": {...}}.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
	pipelineFlags.register(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read pipeline: %w", err)
	}
	steps, err := transform.ParsePipeline(string(data))
	if err != nil {
		return err
	}

	input, err := pipelineFlags.read(cmd.InOrStdin())
	if err != nil {
		return err
	}

	core := NewTextUtilsCore(cfg.Defaults)
	result, err := core.RunPipeline(input, steps)
	if err != nil {
		return err
	}
	return pipelineFlags.write(cmd.OutOrStdout(), result)
}

// ============================================================================
// list and search
// ============================================================================

var (
	listJSON   bool
	searchJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List utilities",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := ""
		if len(args) == 1 {
			category = args[0]
		}
		utilities, err := NewTextUtilsCore(nil).ListOperations(category)
		if err != nil {
			return err
		}
		return printUtilities(cmd.OutOrStdout(), utilities, listJSON)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search utilities by name, description and keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := NewTextUtilsCore(nil).SearchOperations(strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printUtilities(cmd.OutOrStdout(), results, searchJSON)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print JSON instead of a table")
}

func printUtilities(w io.Writer, utilities []*transform.Utility, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(utilities)
	}
	return renderTable(w, utilityHeaders, utilityRows(utilities))
}

// ============================================================================
// serve
// ============================================================================

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the utilities on a Unix socket",
	Long: `Start the socket server. Clients send length-prefixed JSON commands
(apply, run_pipeline, list_operations, get_operation, list_categories,
search_operations) and receive JSON responses.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	server := NewSocketServer(cfg.Socket, NewTextUtilsCore(cfg.Defaults), logger)
	if err := server.Start(); err != nil {
		return err
	}
	server.HandleSignals()
	server.Wait()
	logger.Info("socket server stopped")
	return nil
}

// ============================================================================
// repl
// ============================================================================

var replLocal bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive client",
	Long: `Start the interactive REPL. It connects to a running socket server,
or with --local runs the utilities in-process.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replLocal, "local", false, "Run utilities in-process instead of connecting to a server")
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if replLocal {
		session := NewREPLSession(NewTextUtilsCore(cfg.Defaults), cfg.REPL, cmd.OutOrStdout(), nil)
		return session.Run("Running locally")
	}

	client, err := NewSocketClient(cfg.Socket)
	if err != nil {
		return err
	}
	session := NewREPLSession(NewSocketClientCommands(client), cfg.REPL, cmd.OutOrStdout(), client)
	return session.Run("Connected to socket server at " + cfg.Socket)
}
