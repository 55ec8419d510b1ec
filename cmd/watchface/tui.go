package main

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/tui"
)

var errNotTerminal = errors.New("tui needs an interactive terminal on stdout")

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the face full-screen in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errNotTerminal
			}
			cfg, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			style, err := cfg.Face.Style()
			if err != nil {
				return err
			}
			m := tui.New(domain.RealClock{}, style, cfg.Face.TickInterval)
			return tui.Run(cmd.Context(), m)
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
