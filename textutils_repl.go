package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/pstuifzand/go-textutils/transform"
)

// errExit ends the REPL loop
var errExit = errors.New("exit")

// REPLCommand represents a parsed command
type REPLCommand struct {
	Verb   string
	Object string
	Args   []string
	// Rest is the raw text after the verb, for commands that take JSON
	Rest string
}

// REPLFormatter handles output formatting
type REPLFormatter struct {
	out      io.Writer
	useColor bool
}

// NewREPLFormatter creates a new formatter
func NewREPLFormatter(out io.Writer, useColor bool) *REPLFormatter {
	if out == nil {
		out = os.Stdout
	}
	return &REPLFormatter{out: out, useColor: useColor}
}

// PrintSuccess prints a success message
func (f *REPLFormatter) PrintSuccess(message string) {
	f.print(color.FgGreen, "✓ %s\n", message)
}

// PrintError prints an error message
func (f *REPLFormatter) PrintError(message string) {
	f.print(color.FgRed, "✗ Error: %s\n", message)
}

// PrintInfo prints an info message
func (f *REPLFormatter) PrintInfo(message string) {
	f.print(color.FgCyan, "ℹ %s\n", message)
}

// PrintText prints text as-is, ending it with a newline
func (f *REPLFormatter) PrintText(text string) {
	fmt.Fprint(f.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(f.out)
	}
}

func (f *REPLFormatter) print(attr color.Attribute, format string, args ...interface{}) {
	if f.useColor {
		color.New(attr).Fprintf(f.out, format, args...)
		return
	}
	fmt.Fprintf(f.out, format, args...)
}

// PrintTable prints a formatted table
func (f *REPLFormatter) PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	if err := renderTable(f.out, headers, rows); err != nil {
		f.PrintError("Failed to render table: " + err.Error())
	}
}

// renderTable writes rows under headers with tablewriter
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	table.Header(cells...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintJSON prints formatted JSON
func (f *REPLFormatter) PrintJSON(data interface{}) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		f.PrintError("Failed to format JSON: " + err.Error())
		return
	}
	fmt.Fprintln(f.out, string(jsonBytes))
}

// PrintSteps prints the pipeline steps as a numbered list
func (f *REPLFormatter) PrintSteps(steps []SessionStep, selectedID string) {
	if len(steps) == 0 {
		f.PrintInfo("Pipeline is empty")
		return
	}
	for i, step := range steps {
		marker := " "
		if step.ID == selectedID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %d. %s [%s]", marker, i+1, step.Operation, step.ID)
		if opts := formatOptions(step.Options); opts != "" {
			line += " " + opts
		}
		fmt.Fprintln(f.out, line)
	}
}

// ParseCommand parses a verb-first command string
func ParseCommand(input string) (*REPLCommand, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty command")
	}

	// Split by whitespace, but handle quoted strings
	parts := splitArgs(input)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := &REPLCommand{
		Verb: strings.ToLower(parts[0]),
	}
	if i := strings.IndexAny(input, " \t"); i >= 0 {
		cmd.Rest = strings.TrimSpace(input[i:])
	}

	if len(parts) > 1 {
		cmd.Object = strings.ToLower(parts[1])
		cmd.Args = parts[2:]
	}

	return cmd, nil
}

// splitArgs splits a command string into arguments, respecting quotes
func splitArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)
	escaped := false

	for _, ch := range input {
		if escaped {
			current.WriteRune(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if (ch == '"' || ch == '\'') && !inQuotes {
			inQuotes = true
			quoteChar = ch
			continue
		}

		if ch == quoteChar && inQuotes {
			inQuotes = false
			quoteChar = 0
			continue
		}

		if (ch == ' ' || ch == '\t') && !inQuotes {
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
			continue
		}

		current.WriteRune(ch)
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args
}

// REPLSession manages the REPL interactive session
type REPLSession struct {
	cmds      TextUtilsCommands
	session   *Session
	formatter *REPLFormatter
	prompt    string
	rl        *readline.Instance
	closer    io.Closer
	history   []string
}

// NewREPLSession creates a new REPL session over cmds. closer, when not nil,
// is closed when the session ends.
func NewREPLSession(cmds TextUtilsCommands, cfg REPLConfig, out io.Writer, closer io.Closer) *REPLSession {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &REPLSession{
		cmds:      cmds,
		session:   NewSession(cmds),
		formatter: NewREPLFormatter(out, cfg.Color),
		prompt:    prompt,
		closer:    closer,
		history:   make([]string, 0),
	}
}

// Run starts the interactive REPL loop
func (rs *REPLSession) Run(banner string) error {
	// Create readline instance
	rl, err := readline.New(rs.prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	rs.rl = rl

	rs.formatter.PrintInfo("textutils REPL")
	if banner != "" {
		rs.formatter.PrintInfo(banner)
	}
	rs.formatter.PrintInfo("Type 'help' for available commands")

	// Main REPL loop
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rs.formatter.out)
				break
			}
			rs.formatter.PrintError(err.Error())
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Store in history
		rs.history = append(rs.history, line)

		if err := rs.ExecuteLine(line); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			rs.formatter.PrintError(err.Error())
		}
	}

	rs.formatter.PrintInfo("Goodbye!")
	if rs.closer != nil {
		rs.closer.Close()
	}
	return nil
}

// ExecuteLine parses and runs one command line
func (rs *REPLSession) ExecuteLine(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	return rs.Execute(cmd)
}

// Execute runs a parsed command. Command failures are printed; only
// errExit is returned to end the loop.
func (rs *REPLSession) Execute(cmd *REPLCommand) error {
	var err error
	switch cmd.Verb {
	// Catalog commands
	case "list":
		err = rs.handleList(cmd)
	case "search":
		err = rs.handleSearch(cmd)
	case "apply":
		err = rs.handleApply(cmd)

	// Pipeline editing
	case "add":
		err = rs.handleAdd(cmd)
	case "update":
		err = rs.handleUpdate(cmd)
	case "remove", "delete":
		err = rs.handleRemove(cmd)
	case "move":
		err = rs.handleMove(cmd)
	case "select":
		err = rs.handleSelect(cmd)

	// Query commands
	case "show":
		err = rs.handleShow(cmd)
	case "get":
		err = rs.handleGet(cmd)
	case "run":
		err = rs.handleRun()

	// Text processing
	case "set":
		err = rs.handleSet(cmd)

	// Pipeline commands
	case "export":
		err = rs.handleExport()
	case "import":
		err = rs.handleImport(cmd)

	// Utility commands
	case "help":
		if cmd.Object != "" {
			showSpecificHelp(rs.formatter.out, cmd.Object)
		} else {
			showMainHelp(rs.formatter.out)
		}
	case "quit", "exit":
		return errExit
	case "clear":
		if cmd.Object == "pipeline" {
			rs.session.Clear()
			rs.formatter.PrintSuccess("Pipeline cleared")
			return nil
		}
		fmt.Fprint(rs.formatter.out, "\033[2J\033[H") // Clear screen

	default:
		rs.formatter.PrintError(fmt.Sprintf("Unknown command: %s", cmd.Verb))
		rs.formatter.PrintInfo("Type 'help' for available commands")
	}

	if err != nil {
		rs.formatter.PrintError(sessionError(err))
	}
	return nil
}

// ============================================================================
// Command Handlers
// ============================================================================

func (rs *REPLSession) handleList(cmd *REPLCommand) error {
	switch cmd.Object {
	case "", "categories":
		return rs.listCategories()
	case "steps":
		rs.formatter.PrintSteps(rs.session.GetSteps(), rs.session.GetSelectedStepID())
		return nil
	case "operations":
		category := ""
		if len(cmd.Args) > 0 {
			category = cmd.Args[0]
		}
		return rs.listOperations(category)
	default:
		// list <category>
		return rs.listOperations(cmd.Object)
	}
}

func (rs *REPLSession) listCategories() error {
	categories, err := rs.cmds.ListCategories()
	if err != nil {
		return err
	}
	rows := make([][]string, len(categories))
	for i, c := range categories {
		rows[i] = []string{c.ID, c.Name, fmt.Sprint(len(c.Utilities)), c.Description}
	}
	rs.formatter.PrintTable([]string{"ID", "Name", "Utilities", "Description"}, rows)
	return nil
}

func (rs *REPLSession) listOperations(category string) error {
	utilities, err := rs.cmds.ListOperations(category)
	if err != nil {
		return err
	}
	rs.formatter.PrintTable(utilityHeaders, utilityRows(utilities))
	return nil
}

func (rs *REPLSession) handleSearch(cmd *REPLCommand) error {
	if cmd.Rest == "" {
		return fmt.Errorf("search requires a query")
	}
	results, err := rs.cmds.SearchOperations(cmd.Rest)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		rs.formatter.PrintInfo(fmt.Sprintf("No utilities match %q", cmd.Rest))
		return nil
	}
	rs.formatter.PrintTable(utilityHeaders, utilityRows(results))
	return nil
}

// handleApply runs one utility over the session input without changing
// the pipeline
func (rs *REPLSession) handleApply(cmd *REPLCommand) error {
	if cmd.Object == "" {
		return fmt.Errorf("apply requires an operation")
	}
	options, err := transform.ParseAssignments(cmd.Args)
	if err != nil {
		return err
	}
	output, err := rs.cmds.Apply(cmd.Object, rs.session.GetInputText(), options)
	if err != nil {
		return err
	}
	rs.formatter.PrintText(output)
	return nil
}

func (rs *REPLSession) handleAdd(cmd *REPLCommand) error {
	// add <operation> [key=value...]
	if cmd.Object == "" {
		return fmt.Errorf("add requires an operation")
	}
	options, err := transform.ParseAssignments(cmd.Args)
	if err != nil {
		return err
	}
	id, err := rs.session.AddStep(cmd.Object, options)
	if err != nil {
		return err
	}
	rs.formatter.PrintSuccess(fmt.Sprintf("Added step %s (%s)", id, cmd.Object))
	rs.reportRun()
	return nil
}

func (rs *REPLSession) handleUpdate(cmd *REPLCommand) error {
	// update <step> key=value...
	if cmd.Object == "" || len(cmd.Args) == 0 {
		return fmt.Errorf("update requires a step and at least one key=value")
	}
	id, err := rs.session.ResolveStep(cmd.Object)
	if err != nil {
		return err
	}
	options, err := transform.ParseAssignments(cmd.Args)
	if err != nil {
		return err
	}
	if err := rs.session.UpdateStep(id, options); err != nil {
		return err
	}
	rs.formatter.PrintSuccess("Updated step " + id)
	rs.reportRun()
	return nil
}

func (rs *REPLSession) handleRemove(cmd *REPLCommand) error {
	if cmd.Object == "" {
		return fmt.Errorf("remove requires a step")
	}
	id, err := rs.session.ResolveStep(cmd.Object)
	if err != nil {
		return err
	}
	if err := rs.session.RemoveStep(id); err != nil {
		return err
	}
	rs.formatter.PrintSuccess("Removed step " + id)
	return nil
}

func (rs *REPLSession) handleMove(cmd *REPLCommand) error {
	// move up|down <step>
	if len(cmd.Args) == 0 {
		return fmt.Errorf("move requires 'up' or 'down' and a step")
	}
	id, err := rs.session.ResolveStep(cmd.Args[0])
	if err != nil {
		return err
	}
	switch cmd.Object {
	case "up":
		err = rs.session.MoveUp(id)
	case "down":
		err = rs.session.MoveDown(id)
	default:
		return fmt.Errorf("move requires 'up' or 'down', got %q", cmd.Object)
	}
	if err != nil {
		return err
	}
	rs.formatter.PrintSuccess(fmt.Sprintf("Moved %s %s", id, cmd.Object))
	return nil
}

func (rs *REPLSession) handleSelect(cmd *REPLCommand) error {
	id, err := rs.session.ResolveStep(cmd.Object)
	if err != nil {
		return err
	}
	if err := rs.session.SelectStep(id); err != nil {
		return err
	}
	rs.formatter.PrintSuccess("Selected step " + id)
	return nil
}

func (rs *REPLSession) handleShow(cmd *REPLCommand) error {
	switch cmd.Object {
	case "pipeline":
		rs.formatter.PrintSteps(rs.session.GetSteps(), rs.session.GetSelectedStepID())
		return nil
	case "step":
		if len(cmd.Args) == 0 {
			return fmt.Errorf("show step requires a step")
		}
		id, err := rs.session.ResolveStep(cmd.Args[0])
		if err != nil {
			return err
		}
		rs.formatter.PrintJSON(rs.session.GetStep(id).Step)
		return nil
	case "operation":
		if len(cmd.Args) == 0 {
			return fmt.Errorf("show operation requires an operation")
		}
		return rs.showOperation(cmd.Args[0])
	case "":
		return fmt.Errorf("show requires 'pipeline', 'step' or 'operation'")
	default:
		// show <operation>
		return rs.showOperation(cmd.Object)
	}
}

func (rs *REPLSession) showOperation(id string) error {
	u, err := rs.cmds.GetOperation(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(rs.formatter.out, "%s (%s)\n", u.Name, u.ID)
	fmt.Fprintf(rs.formatter.out, "%s\n", u.Description)
	if !u.Supported {
		rs.formatter.PrintInfo("This utility is not available")
	}
	if len(u.Options) == 0 {
		return nil
	}
	rows := make([][]string, len(u.Options))
	for i, o := range u.Options {
		rows[i] = []string{o.Name, string(o.Type), fmt.Sprint(o.Default), strings.Join(o.Choices, ", "), o.Description}
	}
	rs.formatter.PrintTable([]string{"Option", "Type", "Default", "Choices", "Description"}, rows)
	return nil
}

func (rs *REPLSession) handleGet(cmd *REPLCommand) error {
	switch cmd.Object {
	case "input":
		rs.formatter.PrintText(rs.session.GetInputText())
	case "output":
		if err := rs.session.Err(); err != nil {
			return err
		}
		rs.formatter.PrintText(rs.session.GetOutputText())
	case "selected":
		if id := rs.session.GetSelectedStepID(); id != "" {
			rs.formatter.PrintInfo("Selected: " + id)
		} else {
			rs.formatter.PrintInfo("No step selected")
		}
	default:
		return fmt.Errorf("get requires 'input', 'output', or 'selected' argument")
	}
	return nil
}

func (rs *REPLSession) handleRun() error {
	rs.session.SetInputText(rs.session.GetInputText())
	if err := rs.session.Err(); err != nil {
		return err
	}
	rs.formatter.PrintText(rs.session.GetOutputText())
	return nil
}

func (rs *REPLSession) handleSet(cmd *REPLCommand) error {
	if cmd.Object != "input" {
		return fmt.Errorf("set requires 'input' argument")
	}

	// set input <text or empty for multiline>
	var text string
	if len(cmd.Args) > 0 {
		text = strings.Join(cmd.Args, " ")
	} else {
		rs.formatter.PrintInfo("Enter text (end with blank line):")
		text = rs.readMultiline()
	}

	rs.session.SetInputText(text)
	rs.formatter.PrintSuccess("Input text set")
	rs.reportRun()
	return nil
}

func (rs *REPLSession) handleExport() error {
	exported, err := rs.session.ExportPipeline()
	if err != nil {
		return err
	}
	rs.formatter.PrintText(exported)
	return nil
}

func (rs *REPLSession) handleImport(cmd *REPLCommand) error {
	// import <json or empty for multiline>
	jsonStr := cmd.Rest
	if jsonStr == "" {
		rs.formatter.PrintInfo("Enter JSON pipeline (end with blank line):")
		jsonStr = rs.readMultiline()
	}
	if err := rs.session.ImportPipeline(jsonStr); err != nil {
		return err
	}
	rs.formatter.PrintSuccess(fmt.Sprintf("Imported %d steps", len(rs.session.GetSteps())))
	rs.reportRun()
	return nil
}

// reportRun prints the error of the last pipeline run, if any
func (rs *REPLSession) reportRun() {
	if err := rs.session.Err(); err != nil {
		rs.formatter.PrintError(sessionError(err))
	}
}

// readMultiline reads lines until a blank line or EOF
func (rs *REPLSession) readMultiline() string {
	if rs.rl == nil {
		return ""
	}

	var lines []string
	rs.rl.SetPrompt("")
	defer rs.rl.SetPrompt(rs.prompt)
	for {
		line, err := rs.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil {
			break
		}

		// Empty line ends input
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ============================================================================
// Help
// ============================================================================

func showMainHelp(w io.Writer) {
	help := `
textutils REPL - Available Commands
===================================

CATALOG:
  list [categories]           List the categories
  list <category>             List the utilities of a category
  list operations             List every utility
  search <query>              Search utilities by name, description and keywords
  show <operation>            Show a utility and its options
  apply <operation> [k=v...]  Run one utility over the input

PIPELINE EDITING:
  add <operation> [k=v...]    Append a step to the pipeline
  update <step> k=v...        Change options of a step
  remove <step>               Remove a step
  move up <step>              Move a step earlier
  move down <step>            Move a step later
  select <step>               Select a step
  clear pipeline              Remove every step

QUERY COMMANDS:
  show pipeline               Show the steps
  show step <step>            Show one step as JSON
  get input                   Get current input text
  get output                  Get processed output text
  get selected                Get currently selected step
  run                         Run the pipeline and print the output

TEXT PROCESSING:
  set input <text>            Set input text
  set input                   Enter multiline input mode

PIPELINE MANAGEMENT:
  export                      Export pipeline as JSON
  import <json>               Import pipeline from JSON
  import                      Enter multiline JSON import mode

UTILITIES:
  help [command]              Show this help or help for specific command
  clear                       Clear the screen
  quit, exit                  Exit the REPL

Steps are named by ID (step_0) or by position (1).

EXAMPLES:
  > search base64
  > set input hello world
  > add case-converter case=upper
  > add base64 mode=encode
  > get output
  > move up 2
  > export
`
	fmt.Fprint(w, help)
}

func showSpecificHelp(w io.Writer, command string) {
	helps := map[string]string{
		"apply": `
apply <operation> [key=value...]
  Runs one utility over the current input and prints the result.
  The pipeline is not changed.

  Examples:
    apply case-converter case=snake
    apply replace-text find=foo replace="bar baz"
`,
		"add": `
add <operation> [key=value...]
  Appends a step to the pipeline. Options not given use their defaults.

  Example:
    add sort-text order=descending ignoreCase=true
`,
		"update": `
update <step> key=value...
  Changes options of an existing step.

  Example:
    update step_0 order=ascending
`,
		"set": `
set input <text>
  Sets the input text to be processed by the pipeline.

  Examples:
    set input hello world
    set input
      (then enter multiline text)
`,
		"show": `
show <operation>        Show a utility and its options
show pipeline           Show the pipeline steps
show step <step>        Show one step as JSON
`,
		"move": `
move up <step>          Move a step earlier in the pipeline
move down <step>        Move a step later in the pipeline
`,
		"list": `
list [categories]       List the categories
list <category>         List the utilities of a category
list operations         List every utility
list steps              List the pipeline steps
`,
	}

	if help, ok := helps[command]; ok {
		fmt.Fprintln(w, help)
	} else {
		fmt.Fprintf(w, "No help available for '%s'\n", command)
		fmt.Fprintln(w, "Type 'help' for a list of all commands")
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

var utilityHeaders = []string{"ID", "Name", "Category", "Description"}

func utilityRows(utilities []*transform.Utility) [][]string {
	rows := make([][]string, len(utilities))
	for i, u := range utilities {
		name := u.Name
		if !u.Supported {
			name += " (unavailable)"
		}
		rows[i] = []string{u.ID, name, u.Category, shortenString(u.Description, 60)}
	}
	return rows
}

// formatOptions renders options as sorted key=value pairs
func formatOptions(options map[string]any) string {
	if len(options) == 0 {
		return ""
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, options[k])
	}
	return strings.Join(parts, " ")
}

func shortenString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
