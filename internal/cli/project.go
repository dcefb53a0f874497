package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/montage/internal/document"
	"github.com/roach88/montage/internal/store"
)

// ProjectInfo is one row of the project list output.
type ProjectInfo struct {
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
}

// NewProjectCommand creates the project command group backed by the
// session store.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved projects in the session store",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "montage.db", "session store database path")

	cmd.AddCommand(newProjectSaveCommand(rootOpts, &dbPath))
	cmd.AddCommand(newProjectExportCommand(rootOpts, &dbPath))
	cmd.AddCommand(newProjectListCommand(rootOpts, &dbPath))
	cmd.AddCommand(newProjectDeleteCommand(rootOpts, &dbPath))
	return cmd
}

func newProjectSaveCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:           "save <project-file>",
		Short:         "Validate a document and save it to the store",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			doc, err := document.Load(args[0])
			if err != nil {
				return outputDocumentError(formatter, args[0], err)
			}

			if name == "" {
				name = doc.Name
			}
			if name == "" {
				name = strippedBase(args[0])
			}

			s, err := openStore(formatter, *dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SaveProject(cmd.Context(), name, doc); err != nil {
				_ = formatter.Error("STORE_SAVE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "save project", err)
			}
			return formatter.Success(fmt.Sprintf("saved project %q", name))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (default: document name, then file name)")
	return cmd
}

func newProjectExportCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "export <name> <out-file>",
		Short:         "Write a saved project back to a document file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			s, err := openStore(formatter, *dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.LoadProject(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				_ = formatter.Error("STORE_NOT_FOUND", err.Error(), nil)
				return WrapExitError(ExitCommandError, "export project", err)
			}
			if err != nil {
				_ = formatter.Error("STORE_LOAD", err.Error(), nil)
				return WrapExitError(ExitCommandError, "export project", err)
			}

			if err := document.Save(args[1], doc); err != nil {
				return outputDocumentError(formatter, args[1], err)
			}
			return formatter.Success(fmt.Sprintf("exported project %q to %s", args[0], args[1]))
		},
	}
}

func newProjectListCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved projects",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			s, err := openStore(formatter, *dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			saved, err := s.ListProjects(cmd.Context())
			if err != nil {
				_ = formatter.Error("STORE_LIST", err.Error(), nil)
				return WrapExitError(ExitCommandError, "list projects", err)
			}

			infos := make([]ProjectInfo, 0, len(saved))
			for _, p := range saved {
				infos = append(infos, ProjectInfo{Name: p.Name, UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05")})
			}

			if formatter.Format == "json" {
				return formatter.Success(infos)
			}
			if len(infos) == 0 {
				fmt.Fprintln(formatter.Writer, "no saved projects")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(formatter.Writer, "%-30s %s\n", info.Name, info.UpdatedAt)
			}
			return nil
		},
	}
}

func newProjectDeleteCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a saved project and its journal",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			s, err := openStore(formatter, *dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteProject(cmd.Context(), args[0]); err != nil {
				_ = formatter.Error("STORE_DELETE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "delete project", err)
			}
			return formatter.Success(fmt.Sprintf("deleted project %q", args[0]))
		},
	}
}

func newFormatter(rootOpts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
}

func openStore(formatter *OutputFormatter, path string) (*store.Store, error) {
	s, err := store.Open(path)
	if err != nil {
		_ = formatter.Error("STORE_OPEN", err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "open session store", err)
	}
	return s, nil
}

func strippedBase(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
