package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/pkg/checksum"
	"github.com/goliatone/go-formfill/pkg/model"
)

func (a *app) kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the kinds values can be generated for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, kind := range model.Kinds() {
				fmt.Fprintln(out, kind)
			}
			return nil
		},
	}
}

func (a *app) generateCmd() *cobra.Command {
	var (
		count       int
		masked      bool
		constraints constraintFlags
	)
	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Print synthetic values for a kind",
		Long: `Prints one value per line for the given kind (see "formfill kinds").

Example:
  formfill generate tax-id --count 5 --masked
  formfill generate text --minlength 10 --maxlength 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			c := constraints.model()
			out := cmd.OutOrStdout()
			for range count {
				value, err := engine.Generate(args[0], c)
				if err != nil {
					return err
				}
				if masked {
					value = mask(args[0], value)
				}
				fmt.Fprintln(out, value)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of values")
	cmd.Flags().BoolVar(&masked, "masked", false, "Apply the usual punctuation mask (CPF, CNPJ, CEP)")
	constraints.register(cmd)
	return cmd
}

// mask applies the punctuation people type for document numbers. Kinds
// without a mask pass through.
func mask(kind, value string) string {
	k, _ := model.ParseKind(kind)
	switch k {
	case model.KindTaxID:
		return checksum.FormatTaxID(value)
	case model.KindCompanyTaxID:
		return checksum.FormatCompanyTaxID(value)
	case model.KindPostalCode:
		if len(value) == 8 && strings.Trim(value, "0123456789") == "" {
			return value[:5] + "-" + value[5:]
		}
	}
	return value
}

type constraintFlags struct {
	minLength, maxLength int
	min, max             float64
	cmd                  *cobra.Command
}

func (c *constraintFlags) register(cmd *cobra.Command) {
	c.cmd = cmd
	cmd.Flags().IntVar(&c.minLength, "minlength", 0, "minlength attribute")
	cmd.Flags().IntVar(&c.maxLength, "maxlength", 0, "maxlength attribute")
	cmd.Flags().Float64Var(&c.min, "min", 0, "min attribute")
	cmd.Flags().Float64Var(&c.max, "max", 0, "max attribute")
}

// model keeps only the flags the user actually set, so an absent attribute
// stays nil.
func (c *constraintFlags) model() model.Constraints {
	var out model.Constraints
	flags := c.cmd.Flags()
	if flags.Changed("minlength") {
		out.MinLength = model.IntPtr(c.minLength)
	}
	if flags.Changed("maxlength") {
		out.MaxLength = model.IntPtr(c.maxLength)
	}
	if flags.Changed("min") {
		out.Min = model.FloatPtr(c.min)
	}
	if flags.Changed("max") {
		out.Max = model.FloatPtr(c.max)
	}
	return out
}

func (c *constraintFlags) attrs() map[string]string {
	out := map[string]string{}
	flags := c.cmd.Flags()
	for _, name := range []string{"minlength", "maxlength", "min", "max"} {
		if flags.Changed(name) {
			out[name] = flags.Lookup(name).Value.String()
		}
	}
	return out
}
