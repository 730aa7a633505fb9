package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/actions"
	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/dom/htmldoc"
	"github.com/goliatone/go-formfill/pkg/prompt"
)

const lookupMissNotice = "Cidade não encontrada. Nenhum valor foi inserido."

func (a *app) actionCmd() *cobra.Command {
	var (
		htmlPath  string
		field     string
		formIndex int
		outPath   string
		list      bool
	)
	cmd := &cobra.Command{
		Use:   "action <id>",
		Short: "Run one menu action against a field of an HTML file",
		Long: `Runs a trigger action (an action id such as insertCpf or a menu id such
as insert-cpf) against the named field, or fillForm against a whole form.
The prompted city actions ask for a CEP or a city name on the terminal.

Example:
  formfill action insert-cpf --html cadastro.html --field documento
  formfill action insertCityByCep --html cadastro.html --field cidade
  formfill action --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return printMenu(cmd)
			}
			if len(args) != 1 {
				return fmt.Errorf("an action id is required")
			}
			action, ok := actions.Parse(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", actions.ErrUnknownAction, args[0])
			}
			if htmlPath == "" {
				return fmt.Errorf("--html is required")
			}

			if a.prompter == nil {
				a.prompter = prompt.NewSurvey()
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(htmlPath)
			if err != nil {
				return err
			}
			doc, err := htmldoc.Parse(f)
			f.Close()
			if err != nil {
				return err
			}
			form, err := doc.Form(formIndex)
			if err != nil {
				return err
			}

			target := actions.Target{Form: form}
			if action != actions.FillForm {
				if field == "" {
					return fmt.Errorf("--field is required for %s", action)
				}
				ctrl := findControl(form, field)
				if ctrl == nil {
					return fmt.Errorf("no control named %q in form %d", field, formIndex)
				}
				target.Control = ctrl
			}

			result, err := engine.Handle(cmd.Context(), action, target)
			if errors.Is(err, actions.ErrLookupMiss) {
				return a.prompter.Notice(cmd.Context(), lookupMissNotice)
			}
			if err != nil {
				return err
			}
			if result.Aborted {
				a.logger.Info("action aborted", zap.String("action", string(action)))
				return nil
			}
			if result.Value != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Value)
			}

			markup := doc.String()
			if outPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
				return err
			}
			return os.WriteFile(outPath, []byte(markup), 0o644)
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "HTML file holding the form")
	cmd.Flags().StringVar(&field, "field", "", "name or id of the target control")
	cmd.Flags().IntVar(&formIndex, "form", 0, "Index of the form holding the field")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the updated HTML here instead of stdout")
	cmd.Flags().BoolVar(&list, "list", false, "List the menu actions")
	return cmd
}

func printMenu(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, def := range actions.Menu() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.MenuID, def.Action, def.Title)
	}
	return w.Flush()
}

func findControl(form dom.Form, name string) dom.Control {
	for _, ctrl := range form.Controls() {
		if ctrl.Name() == name || ctrl.ID() == name {
			return ctrl
		}
	}
	return nil
}
