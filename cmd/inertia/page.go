package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/page"
)

func pageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Work with page payloads",
	}
	cmd.AddCommand(pageEncodeCmd(), pageDecodeCmd(), pageExtractCmd())
	return cmd
}

func pageEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <page.json|page.yaml>",
		Short: "Encode a page as an embedded payload",
		Long: `Encode reads a page description and prints the base64 payload
placed in the data-page attribute.

Examples:
  inertia page encode home.json
  inertia page encode fixtures/users.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPageFile(args[0])
			if err != nil {
				return err
			}
			encoded, err := page.Encode(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
}

func pageDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <payload>",
		Short: "Decode an embedded payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := page.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return inerr.New("E040").WithDetail(err.Error()).Wrap(err)
			}
			return printPage(cmd, p)
		},
	}
}

func pageExtractCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "extract <document.html>",
		Short: "Extract the page embedded in an HTML document",
		Long: `Extract finds the #<id>-data element of a server-rendered document
and prints its decoded page.

Examples:
  inertia page extract index.html
  curl -s localhost:8080/users | inertia page extract - --id root`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				f = file
			}
			p, err := page.ReadEmbedded(f, id)
			if err != nil {
				return inerr.New("E041").WithDetail(err.Error()).
					WithSuggestion(fmt.Sprintf("check that the document has an element #%s with a %s attribute", page.DataElementID(id), page.DataAttribute)).
					Wrap(err)
			}
			return printPage(cmd, p)
		},
	}

	cmd.Flags().StringVar(&id, "id", "app", "Mount element id")
	return cmd
}

// readPageFile loads a page from JSON or YAML.
func readPageFile(path string) (*page.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, inerr.New("E040").WithDetail(err.Error()).Wrap(err)
		}
		if data, err = json.Marshal(raw); err != nil {
			return nil, err
		}
	}
	p, err := page.ParseJSON(data)
	if err != nil {
		return nil, inerr.New("E040").WithDetail(err.Error()).Wrap(err)
	}
	if err := p.Validate(); err != nil {
		return nil, inerr.New("E040").WithDetail(err.Error()).Wrap(err)
	}
	return p, nil
}

func printPage(cmd *cobra.Command, p *page.Page) error {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
