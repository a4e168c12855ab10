package cli

import (
	"fmt"

	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally filtered by column equality",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseAssignments(filters)
			if err != nil {
				return err
			}
			if err := initStore(cmd); err != nil {
				return err
			}

			views, err := manager.Read(cmd.Context(), parsed)
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(views)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Column filter key=value, repeatable (aliases accepted)")

	return cmd
}

func newCreateCmd() *cobra.Command {
	var file string
	var sets []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from a file and/or --set assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := buildInput(file, sets)
			if err != nil {
				return err
			}
			if err := initStore(cmd); err != nil {
				return err
			}

			record, err := manager.Create(cmd.Context(), input)
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(record)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file holding the record")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment key=value, repeatable")

	return cmd
}

func newUpdateCmd() *cobra.Command {
	var file string
	var sets []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the named fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := buildInput(file, sets)
			if err != nil {
				return err
			}
			if len(input) == 0 {
				return fmt.Errorf("nothing to update: pass --file or --set")
			}
			input[playerstats.ColumnID] = args[0]
			delete(input, playerstats.BackendIDAlias)

			if err := initStore(cmd); err != nil {
				return err
			}

			record, err := manager.Update(cmd.Context(), input)
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(record)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file holding the changed fields")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment key=value, repeatable")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStore(cmd); err != nil {
				return err
			}
			if err := manager.Delete(cmd.Context(), playerstats.Input{playerstats.ColumnID: args[0]}); err != nil {
				return err
			}

			newCmdOutput(cmd).PrintMessage(fmt.Sprintf("Deleted record %s", args[0]))
			return nil
		},
	}

	return cmd
}

func newCmdOutput(cmd *cobra.Command) *Output {
	return NewOutput(opts.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
