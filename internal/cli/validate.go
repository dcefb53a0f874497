package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/montage/internal/document"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	File   string `json:"file"`
	Tracks int    `json:"tracks,omitempty"`
	Clips  int    `json:"clips,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Validate a project document",
		Long: `Validate a montage project document (JSON or YAML) against the
document schema and its semantic rules, without resolving timing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := document.Load(path)
	if err != nil {
		return outputDocumentError(formatter, path, err)
	}

	clips := 0
	for _, t := range doc.Tracks {
		clips += len(t.Clips)
	}
	formatter.VerboseLog("Parsed %d track(s), %d clip(s) from %s", len(doc.Tracks), clips, path)

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, File: path, Tracks: len(doc.Tracks), Clips: clips})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid (%d tracks, %d clips)\n", path, len(doc.Tracks), clips)
	return nil
}

// outputDocumentError renders a document load failure and maps it to an
// exit code: schema/semantic problems are validation failures, missing
// files and unreadable paths are command errors.
func outputDocumentError(formatter *OutputFormatter, path string, err error) error {
	code := "DOC_ERROR"
	exit := ExitCommandError

	var derr *document.Error
	if errors.As(err, &derr) {
		code = derr.Code
		switch derr.Code {
		case document.ErrCodeSchema, document.ErrCodeVersion, document.ErrCodeInvalidClip, document.ErrCodeParse:
			exit = ExitFailure
		}
	}

	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(exit, fmt.Sprintf("validate %s", path), err)
}
