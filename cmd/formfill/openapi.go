package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/pkg/openapi"
)

func (a *app) openapiCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "openapi <file|url> [operationId]",
		Short: "Print a sample request body for an OpenAPI operation",
		Long: `Loads an OpenAPI 3 document and fills the request body schema of the
operation with values picked by the field classifier. Without an operation
id the available ids are listed. With --root the document is resolved
inside that directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, loader, err := openapiSource(root, args[0])
			if err != nil {
				return err
			}
			doc, err := loader.Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				ops, err := openapi.Operations(cmd.Context(), doc)
				if err != nil {
					return err
				}
				for _, id := range openapi.OperationIDs(ops) {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			payload, err := engine.Payload(cmd.Context(), doc, args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(payload))
			return err
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "directory the document path is relative to")
	return cmd
}

// openapiSource reads location from the root directory when one is given.
// URLs always go through HTTP.
func openapiSource(root, location string) (openapi.Source, *openapi.Loader, error) {
	src, err := openapi.ParseSource(location)
	if err != nil {
		return nil, nil, err
	}
	if root == "" || src.Kind() == openapi.SourceKindURL {
		return src, openapi.NewLoader(openapi.WithHTTPClient(http.DefaultClient)), nil
	}
	name := filepath.ToSlash(filepath.Clean(location))
	return openapi.SourceFromFS(name), openapi.NewLoader(openapi.WithFileSystem(os.DirFS(root))), nil
}
