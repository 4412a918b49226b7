package main

import (
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hhhapz/mdsite/block"
	"github.com/hhhapz/mdsite/inline"
	"github.com/hhhapz/mdsite/markdown"
)

func dumpCommand() *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Show the blocks, spans and html tree of a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "could not read markdown")
			}
			pp.ColoringEnabled = color
			return dump(cmd.OutOrStdout(), string(data))
		},
	}

	cmd.Flags().BoolVar(&color, "color", true, "colorize the node tree")
	return cmd
}

func dump(w io.Writer, doc string) error {
	for i, b := range block.Split(doc) {
		fmt.Fprintf(w, "block %d: %s\n", i+1, block.Classify(b))
		for _, text := range block.Inline(b) {
			spans, err := inline.Resolve(text)
			if err != nil {
				return errors.Wrapf(err, "block %d", i+1)
			}
			for _, s := range spans {
				fmt.Fprintf(w, "  %s\n", s)
			}
		}
	}

	node, err := markdown.Convert(doc)
	if err != nil {
		return err
	}
	pp.Fprintln(w, node)

	html, err := node.HTML()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, html)

	title, err := markdown.ExtractTitle(doc)
	if err != nil {
		title = "(none)"
	}
	fmt.Fprintf(w, "title: %s\n", title)
	return nil
}
