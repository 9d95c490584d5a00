// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ctxpack/internal/config"
	"ctxpack/internal/ignore"
	"ctxpack/internal/output"
	"ctxpack/internal/packer"
	"ctxpack/internal/services/clipboard"
	"ctxpack/internal/services/launcher"
	"ctxpack/internal/tokenizer"
	"ctxpack/internal/types"
	"ctxpack/internal/utils"
)

const (
	rootUse              = "ctxpack [path]"
	rootShortDescription = "pack project source into a single context document"
	rootLongDescription  = `ctxpack walks a project directory, selects source files by extension while
honoring a default ignore set plus the root .gitignore, and concatenates the
selected contents into ` + output.ArtifactFileName + ` in the working directory.
The instruction prompt is written to ` + output.PromptFileName + ` and copied to the
clipboard, then the chat opens in the default browser.`
	rootUsageExample = `  # Pack the current directory
  ctxpack

  # Pack another project and skip the browser
  ctxpack ~/src/service --no-browser

  # Exclude generated folders and include a token total
  ctxpack -e "gen/" --tokens`

	pathFlagName      = "path"
	pathFlagShorthand = "p"
	exclusionFlagName = "e"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	noClipboardFlagName = "no-clipboard"
	noBrowserFlagName = "no-browser"
	noRevealFlagName  = "no-reveal"
	versionFlagName   = "version"

	pathFlagDescription        = "path to the project root directory (alternative to the positional argument)"
	exclusionFlagDescription   = "additional exclude pattern, gitignore style"
	tokensFlagDescription      = "include a token total in the summary"
	modelFlagDescription       = "tokenizer model for token counting"
	noClipboardFlagDescription = "do not copy the instruction prompt to the clipboard"
	noBrowserFlagDescription   = "do not open the browser after packing"
	noRevealFlagDescription    = "do not open the file manager on the artifact"
	versionFlagDescription     = "display application version"

	versionTemplate = "ctxpack version: %s\n"

	// rootEnvironmentVariable names the environment variable consulted when
	// neither the positional argument nor the path flag supplies a root.
	rootEnvironmentVariable = "CONTEXT_ROOT"

	// chatURL is the page opened in the default browser after packing.
	chatURL = "https://gemini.google.com/app"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorInvalidDirectoryFormat = "the path '%s' is not a valid directory"
	warningGitignoreFormat      = "Warning: Could not read .gitignore: %v\n"
	noGitignoreMessage          = "No .gitignore found; continuing with default ignore rules."
	scanningMessageFormat       = "Scanning project at: %s...\n"
	noFilesMessage              = "No matching files found to pack."
	cancelledMessage            = "Operation cancelled."
	successMessageFormat        = "SUCCESS! Context packed into: %s\n"
	filesIncludedFormat         = " - Files included: %d\n"
	approximateSizeFormat       = " - Approximate size: %.2f MB\n"
	tokenTotalFormat            = " - Tokens (%s): %d\n"
	promptStatusFormat          = "INSTRUCTION PROMPT: %s\n"
	promptCopiedStatus          = "Copied to clipboard!"
	promptSkippedStatus         = "Clipboard copy disabled."
	promptFailedStatusFormat    = "Could not copy to clipboard (%v)"
	stepsHeading                = "STEPS:"
	stepBrowserMessage          = "1. The chat web app is opening..."
	stepDragDropFormat          = "2. DRAG & DROP '%s' into the chat."
	stepPasteMessage            = "3. PASTE (Ctrl+V) the instruction prompt."
	browserFailedFormat         = "Could not open browser: %v\n"
	revealFailedFormat          = "Could not open file explorer: %v\n"

	dividerWidth = 50
)

// Execute runs the ctxpack application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// packOptions stores configuration gathered from flags.
type packOptions struct {
	flagPath          string
	exclusionPatterns []string
	tokensEnabled     bool
	tokenModel        string
	disableClipboard  bool
	disableBrowser    bool
	disableReveal     bool
}

// createRootCommand builds the root Cobra command. The tool has a single
// operation, so the root command performs the pack itself.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options packOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			positionalPath := ""
			if len(arguments) > 0 {
				positionalPath = arguments[0]
			}
			return runPack(positionalPath, options)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.flagPath, pathFlagName, pathFlagShorthand, "", pathFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, "", modelFlagDescription)
	rootCommand.Flags().BoolVar(&options.disableClipboard, noClipboardFlagName, false, noClipboardFlagDescription)
	rootCommand.Flags().BoolVar(&options.disableBrowser, noBrowserFlagName, false, noBrowserFlagDescription)
	rootCommand.Flags().BoolVar(&options.disableReveal, noRevealFlagName, false, noRevealFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runPack resolves the traversal root, performs the pack, and triggers the
// post-run collaborators.
func runPack(positionalPath string, options packOptions) (err error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	// A local dotenv file may supply the root environment variable.
	_ = godotenv.Load(utils.EnvironmentFileName)

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if configurationError != nil {
		return configurationError
	}
	packConfiguration := applicationConfiguration.Pack

	rootPath, rootPathError := resolveRootPath(positionalPath, options.flagPath, os.Getenv(rootEnvironmentVariable), workingDirectory)
	if rootPathError != nil {
		return rootPathError
	}

	gitignorePatterns, gitignoreLoadError := config.LoadGitignorePatterns(rootPath)
	if gitignoreLoadError != nil {
		fmt.Fprintf(os.Stderr, warningGitignoreFormat, gitignoreLoadError)
	} else if gitignorePatterns == nil {
		fmt.Println(noGitignoreMessage)
	}

	extraPatterns := append(append([]string{}, packConfiguration.Exclude...), options.exclusionPatterns...)
	for _, extraPattern := range extraPatterns {
		trimmedPattern := strings.TrimSpace(extraPattern)
		if trimmedPattern != "" {
			gitignorePatterns = append(gitignorePatterns, trimmedPattern)
		}
	}
	ruleSet := ignore.NewDefaultRuleSet(utils.DeduplicatePatterns(gitignorePatterns))

	tokenCounter, tokenCounterError := buildTokenCounter(options, packConfiguration.Tokens)
	if tokenCounterError != nil {
		return tokenCounterError
	}

	artifactPath := filepath.Join(workingDirectory, output.ArtifactFileName)
	artifactWriter, artifactError := output.NewArtifactWriter(artifactPath)
	if artifactError != nil {
		return artifactError
	}
	defer func() {
		if closeError := artifactWriter.Close(); closeError != nil && err == nil {
			err = closeError
		}
	}()

	signalContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()

	fmt.Printf(scanningMessageFormat, rootPath)
	packResult, packError := packer.Pack(signalContext, packer.Options{
		RootPath:      rootPath,
		RuleSet:       ruleSet,
		Allowlist:     packer.NewDefaultExtensionAllowlist(),
		ReservedNames: []string{output.ArtifactFileName, output.PromptFileName},
		Artifact:      artifactWriter,
		TokenCounter:  tokenCounter,
		StatusWriter:  os.Stdout,
		WarningWriter: os.Stderr,
	})
	if packError != nil {
		if errors.Is(packError, context.Canceled) {
			fmt.Println()
			fmt.Println(cancelledMessage)
			return nil
		}
		return packError
	}

	if packResult.FilesPacked == 0 {
		fmt.Println(noFilesMessage)
		return nil
	}

	if _, promptWriteError := output.WritePromptFile(workingDirectory); promptWriteError != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", promptWriteError)
	}

	promptStatus := promptSkippedStatus
	if clipboardEnabled(packConfiguration, options) {
		if copyError := clipboard.NewService().Copy(output.InstructionPrompt); copyError != nil {
			promptStatus = fmt.Sprintf(promptFailedStatusFormat, copyError)
		} else {
			promptStatus = promptCopiedStatus
		}
	}

	printSummary(packResult, promptStatus)

	interactiveTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if browserEnabled(packConfiguration, options) && interactiveTerminal {
		if browserError := launcher.OpenBrowser(chatURL); browserError != nil {
			fmt.Printf(browserFailedFormat, browserError)
		}
	}
	if revealEnabled(packConfiguration, options) && interactiveTerminal {
		if revealError := launcher.RevealArtifact(artifactPath); revealError != nil {
			fmt.Printf(revealFailedFormat, revealError)
		}
	}
	return nil
}

// printSummary renders the final status block.
func printSummary(packResult types.PackResult, promptStatus string) {
	divider := strings.Repeat("-", dividerWidth)
	successColor := color.New(color.FgGreen, color.Bold)

	fmt.Println(divider)
	successColor.Printf(successMessageFormat, output.ArtifactFileName)
	fmt.Printf(filesIncludedFormat, packResult.FilesPacked)
	fmt.Printf(approximateSizeFormat, float64(packResult.TotalCharacters)/1024/1024)
	if packResult.TokenizerName != "" {
		fmt.Printf(tokenTotalFormat, packResult.TokenizerName, packResult.TotalTokens)
	}
	fmt.Println(divider)
	fmt.Printf(promptStatusFormat, promptStatus)
	fmt.Println(divider)
	fmt.Println(stepsHeading)
	fmt.Println(stepBrowserMessage)
	fmt.Printf(stepDragDropFormat+"\n", output.ArtifactFileName)
	fmt.Println(stepPasteMessage)
	fmt.Println(divider)
}

// resolveRootPath picks the traversal root: positional argument, path flag,
// environment variable, then the working directory, first non-empty wins.
// The result is absolute and must be an existing directory.
func resolveRootPath(positionalPath string, flagPath string, environmentPath string, workingDirectory string) (string, error) {
	selectedPath := workingDirectory
	for _, candidatePath := range []string{positionalPath, flagPath, environmentPath} {
		if strings.TrimSpace(candidatePath) != "" {
			selectedPath = candidatePath
			break
		}
	}

	absolutePath, absolutePathError := filepath.Abs(selectedPath)
	if absolutePathError != nil {
		return "", fmt.Errorf("abs failed for '%s': %w", selectedPath, absolutePathError)
	}
	pathInformation, statError := os.Stat(absolutePath)
	if statError != nil || !pathInformation.IsDir() {
		return "", fmt.Errorf(errorInvalidDirectoryFormat, absolutePath)
	}
	return absolutePath, nil
}

// buildTokenCounter constructs the optional token counter. Counting stays off
// unless the flag or the configuration enables it.
func buildTokenCounter(options packOptions, tokenConfiguration config.TokenConfiguration) (tokenizer.Counter, error) {
	enabled := options.tokensEnabled
	if !enabled && tokenConfiguration.Enabled != nil {
		enabled = *tokenConfiguration.Enabled
	}
	if !enabled {
		return nil, nil
	}
	modelName := options.tokenModel
	if modelName == "" {
		modelName = tokenConfiguration.Model
	}
	createdCounter, _, counterError := tokenizer.NewCounter(modelName)
	if counterError != nil {
		return nil, counterError
	}
	return createdCounter, nil
}

func clipboardEnabled(packConfiguration config.PackConfiguration, options packOptions) bool {
	if options.disableClipboard {
		return false
	}
	if packConfiguration.Clipboard != nil {
		return *packConfiguration.Clipboard
	}
	return true
}

func browserEnabled(packConfiguration config.PackConfiguration, options packOptions) bool {
	if options.disableBrowser {
		return false
	}
	if packConfiguration.Browser != nil {
		return *packConfiguration.Browser
	}
	return true
}

func revealEnabled(packConfiguration config.PackConfiguration, options packOptions) bool {
	if options.disableReveal {
		return false
	}
	if packConfiguration.Reveal != nil {
		return *packConfiguration.Reveal
	}
	return true
}
