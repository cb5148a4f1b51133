// Package main provides the CLI entrypoint for skim.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skimcli/skim/internal/config"
	"github.com/skimcli/skim/internal/emit"
	"github.com/skimcli/skim/internal/gitfiles"
	"github.com/skimcli/skim/internal/ignore"
	"github.com/skimcli/skim/internal/output"
	"github.com/skimcli/skim/internal/scorer"
	"github.com/skimcli/skim/internal/session"
	"github.com/skimcli/skim/internal/tokens"
	"github.com/skimcli/skim/internal/tree"
)

var (
	treeMinScore int
	treeDepth    int
	treeFlat     bool
	treeNoColor  bool
	treeGitRoot  bool
	treeDirty    bool
	treeStaged   bool
	treeUnstaged bool
	treeFormat   string
	treeTokens   bool

	catLevel     int
	catPath      string
	catNoHeaders bool
	catSession   string
	catDirty     bool
	catStaged    bool
	catUnstaged  bool
	catFormat    string
	catTokens    bool

	initGlobal bool
	initForce  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "skim",
		Short:         "LLM context tool that scores project files by importance",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newCatCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Show project structure with scores",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTreeCmd,
	}
	cmd.Flags().IntVarP(&treeMinScore, "min-score", "s", 1, "minimum score (1-10)")
	cmd.Flags().IntVarP(&treeDepth, "depth", "d", -1, "maximum depth (-1 = unlimited)")
	cmd.Flags().BoolVarP(&treeFlat, "flat", "f", false, "flat output instead of tree")
	cmd.Flags().BoolVar(&treeNoColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&treeGitRoot, "git-root", false, "show the entire repository, not just the current subtree")
	cmd.Flags().BoolVar(&treeDirty, "dirty", false, "show only dirty files")
	cmd.Flags().BoolVar(&treeStaged, "staged", false, "show only staged files")
	cmd.Flags().BoolVar(&treeUnstaged, "unstaged", false, "show only unstaged files")
	cmd.Flags().StringVar(&treeFormat, "format", "", "output format: text, json, xml")
	cmd.Flags().BoolVarP(&treeTokens, "tokens", "t", false, "show token counts")
	return cmd
}

func runTreeCmd(cmd *cobra.Command, args []string) error {
	pathArg := "."
	if len(args) > 0 {
		pathArg = args[0]
	}

	root, err := gitfiles.RepoRoot(pathArg)
	if err != nil {
		return err
	}

	fileCfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "min-score", &treeMinScore, fileCfg.Tree.MinScore)
	applyIntConfig(cmd, "depth", &treeDepth, fileCfg.Tree.Depth)
	applyBoolConfig(cmd, "flat", &treeFlat, fileCfg.Tree.Flat)
	applyBoolConfig(cmd, "no-color", &treeNoColor, fileCfg.Tree.NoColor)
	applyBoolConfig(cmd, "git-root", &treeGitRoot, fileCfg.Tree.GitRoot)

	format, err := output.ParseFormat(treeFormat)
	if err != nil {
		return err
	}

	prefix := ""
	if !treeGitRoot {
		if prefix, err = subtreePrefix(pathArg, root); err != nil {
			return err
		}
	}

	scored, err := selectFiles(root, prefix, treeDirty, treeStaged, treeUnstaged)
	if err != nil {
		return err
	}

	kept := scored[:0]
	for _, f := range scored {
		if f.Score >= treeMinScore {
			kept = append(kept, f)
		}
	}
	scored = kept
	if treeDepth >= 0 {
		scored = tree.FilterDepth(scored, treeDepth)
	}

	counter := tokens.NewCounter()

	switch format {
	case output.FormatText:
		width := 0
		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		if isTTY {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}
		tree.Render(os.Stdout, scored, tree.Options{
			Flat:    treeFlat,
			Color:   !treeNoColor && isTTY,
			Tokens:  treeTokens,
			Width:   width,
			Root:    root,
			Counter: counter,
		})
		return nil
	case output.FormatJSON:
		return output.WriteJSON(os.Stdout, treePayload(root, scored, counter))
	default:
		return output.WriteTreeXML(os.Stdout, treePayload(root, scored, counter))
	}
}

func treePayload(root string, scored []scorer.ScoredFile, counter *tokens.Counter) output.TreePayload {
	payload := output.TreePayload{
		Project: filepath.Base(root),
		Files:   make([]output.FileOutput, 0, len(scored)),
	}
	for _, f := range scored {
		entry := output.FileOutput{Path: f.Path, Score: f.Score}
		if treeTokens {
			if content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f.Path))); err == nil {
				n := counter.Count(session.ComputeHash(content), string(content))
				entry.Tokens = &n
			}
		}
		payload.Files = append(payload.Files, entry)
	}
	return payload
}

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat [files...]",
		Short: "Output file contents",
		RunE:  runCatCmd,
	}
	cmd.Flags().IntVarP(&catLevel, "level", "l", emit.DefaultThreshold, "minimum score level (1-10)")
	cmd.Flags().StringVarP(&catPath, "path", "p", ".", "project path")
	cmd.Flags().BoolVar(&catNoHeaders, "no-headers", false, "disable headers")
	cmd.Flags().StringVarP(&catSession, "session", "S", "", "session name (overrides "+session.EnvVar+")")
	cmd.Flags().BoolVar(&catDirty, "dirty", false, "show only dirty files")
	cmd.Flags().BoolVar(&catStaged, "staged", false, "show only staged files")
	cmd.Flags().BoolVar(&catUnstaged, "unstaged", false, "show only unstaged files")
	cmd.Flags().StringVar(&catFormat, "format", "", "output format: text, json, xml")
	cmd.Flags().BoolVarP(&catTokens, "tokens", "t", false, "show token counts")
	return cmd
}

func runCatCmd(cmd *cobra.Command, args []string) error {
	root, err := gitfiles.RepoRoot(catPath)
	if err != nil {
		return err
	}

	fileCfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "level", &catLevel, fileCfg.Cat.Level)
	applyBoolConfig(cmd, "no-headers", &catNoHeaders, fileCfg.Cat.NoHeaders)

	format, err := output.ParseFormat(catFormat)
	if err != nil {
		return err
	}

	// Explicit --session wins over the ambient environment value; neither
	// means no deduplication.
	var sess *session.Session
	sessionName := catSession
	if sessionName == "" {
		sessionName = os.Getenv(session.EnvVar)
	}
	if sessionName != "" {
		if sess, err = session.Load(sessionName); err != nil {
			return err
		}
	}

	opts := emit.Options{
		Root:       root,
		Explicit:   args,
		Threshold:  catLevel,
		Dirty:      catDirty,
		Staged:     catStaged,
		Unstaged:   catUnstaged,
		Session:    sess,
		WithTokens: catTokens,
		Counter:    tokens.NewCounter(),
	}

	if len(args) == 0 {
		if opts.Prefix, err = subtreePrefix(catPath, root); err != nil {
			return err
		}
		if opts.Ignore, err = ignore.Load(root); err != nil {
			return err
		}
		if catDirty || catStaged || catUnstaged {
			if opts.Status, err = gitfiles.Status(root); err != nil {
				return err
			}
		}
	}

	res, err := emit.Run(opts)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatText:
		output.WriteCatText(os.Stdout, res, catNoHeaders)
	case output.FormatJSON:
		if err := output.WriteJSON(os.Stdout, output.CatPayloadFrom(res)); err != nil {
			return err
		}
	default:
		if err := output.WriteCatXML(os.Stdout, output.CatPayloadFrom(res)); err != nil {
			return err
		}
	}

	// One save per run: the durability point for every mark made above.
	if sess != nil {
		if err := sess.Save(); err != nil {
			return err
		}
	}
	return nil
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
		Args:  cobra.NoArgs,
		RunE:  runSessionInitCmd,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE:  runSessionListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show session contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear <name>",
		Short: "Clear session",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionClearCmd,
	})

	return cmd
}

// runSessionInitCmd prints shell code, so `eval "$(skim session)"` activates
// a session for subsequent invocations.
func runSessionInitCmd(_ *cobra.Command, _ []string) error {
	if existing := os.Getenv(session.EnvVar); existing != "" {
		fmt.Printf("echo 'Session already active: %s'\n", existing)
		return nil
	}

	id := session.GenerateID()
	sess, err := session.Load(id)
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Printf("export %s=%s; echo 'Session created: %s'\n", session.EnvVar, id, id)
	return nil
}

func runSessionListCmd(cmd *cobra.Command, _ []string) error {
	ids, err := session.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logErrln("No sessions found.")
		return nil
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runSessionShowCmd(cmd *cobra.Command, args []string) error {
	sess, err := session.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Session: %s (%d files)\n", sess.ID, len(sess.Files))
	paths := make([]string, 0, len(sess.Files))
	for path := range sess.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		hash := sess.Files[path]
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hash, path)
	}
	return nil
}

func runSessionClearCmd(_ *cobra.Command, args []string) error {
	name := args[0]
	if err := session.Clear(name); err != nil {
		return err
	}
	fmt.Printf("Cleared session '%s'\n", name)

	if os.Getenv(session.EnvVar) == name {
		fmt.Printf("Note: this was your active session. Run 'unset %s' to clear the environment variable.\n", session.EnvVar)
	}
	return nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default ignore file",
		Args:  cobra.NoArgs,
		RunE:  runInitCmd,
	}
	cmd.Flags().BoolVar(&initGlobal, "global", false, "create the global ignore file instead of a local one")
	cmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	return cmd
}

func runInitCmd(_ *cobra.Command, _ []string) error {
	path := config.LocalIgnoreName
	if initGlobal {
		globalPath, err := config.GlobalIgnorePath()
		if err != nil {
			return err
		}
		path = globalPath
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if initGlobal {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultIgnoreTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write ignore file: %w", err)
	}

	location := "local"
	if initGlobal {
		location = "global"
	}
	fmt.Printf("Created %s ignore file at %s\n", location, path)
	return nil
}

// selectFiles lists, filters, and scores the repository for tree.
func selectFiles(root, prefix string, dirty, staged, unstaged bool) ([]scorer.ScoredFile, error) {
	paths, err := gitfiles.LsFiles(root)
	if err != nil {
		return nil, err
	}
	ign, err := ignore.Load(root)
	if err != nil {
		return nil, err
	}

	var status *gitfiles.RepoStatus
	if dirty || staged || unstaged {
		if status, err = gitfiles.Status(root); err != nil {
			return nil, err
		}
	}

	var kept []string
	for _, path := range paths {
		if ign.IsIgnored(path) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(path, prefix) {
			continue
		}
		if status != nil && !status.Matches(path, dirty, staged, unstaged) {
			continue
		}
		kept = append(kept, path)
	}
	return scorer.ScoreAll(kept), nil
}

// subtreePrefix returns the repo-relative prefix of pathArg, with a trailing
// slash, or "" when pathArg is the repository root itself.
func subtreePrefix(pathArg, root string) (string, error) {
	absPath, err := filepath.Abs(pathArg)
	if err != nil {
		return "", err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

const defaultIgnoreTemplate = `# Lock files
*.lock
package-lock.json
Cargo.lock
yarn.lock
Gemfile.lock
poetry.lock

# Generated files
*.min.js
*.min.css
*.map
*.d.ts
*.pyc
*.generated.*

# Build output
dist/
build/
out/
target/
.next/
.nuxt/

# Changelogs and history
CHANGELOG.md
HISTORY.md
NEWS.md

# Editor and IDE
.vscode/
.idea/
*.swp
*.swo
*~

# Vendor and dependencies
vendor/
node_modules/
`
