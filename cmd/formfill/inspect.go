package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/pkg/dom"
)

var errInvalidValue = errors.New("value is not valid")

func (a *app) validateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate <kind> <value>",
		Short: "Check a value against a kind (check digits, layout, dataset)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			result, err := engine.Validate(args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintf(out, "valid %s\n", result.Kind)
			} else {
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "invalid %s: %s (%s)\n", result.Kind, issue.Message, issue.Code)
				}
			}
			if !result.Valid {
				return errInvalidValue
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func (a *app) classifyCmd() *cobra.Command {
	var (
		name, typ, tag string
		constraints    constraintFlags
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show which kind a control would be filled with",
		Long: `Runs the field classifier on a control described by flags.

Example:
  formfill classify --name estado --maxlength 2
  formfill classify --name foo --type tel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			desc := dom.DescribeAttrs(tag, typ, name, constraints.attrs())
			kind, rule := engine.Classify(desc)
			if rule == "" {
				rule = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", kind, rule)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name (or id) attribute")
	cmd.Flags().StringVar(&typ, "type", "text", "type attribute")
	cmd.Flags().StringVar(&tag, "tag", "input", "element: input, textarea or select")
	constraints.register(cmd)
	return cmd
}
