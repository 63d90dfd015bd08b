package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/jsvensson/iconlookup/internal/engine"
	"github.com/jsvensson/iconlookup/internal/manifest"
	"github.com/spf13/cobra"
)

func runThemes(cmd *cobra.Command, args []string) error {
	c := openCatalog(cfg.Synthesize)
	names := c.Names()

	match := func(string) bool { return true }
	if flagMatch != "" {
		g, err := glob.Compile(flagMatch)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", flagMatch, err)
		}
		match = g.Match
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	listed := 0
	for _, name := range names {
		if !match(name) {
			continue
		}
		n := len(c.Locations(name))
		noun := "location"
		if n != 1 {
			noun += "s"
		}
		fmt.Fprintf(w, "%s\t%d %s\n", name, n, noun)
		listed++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if listed == 0 && flagMatch != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "no theme matches %q%s\n", flagMatch, didYouMean(flagMatch, names))
		return errFailed
	}
	return nil
}

func runDirs(cmd *cobra.Command, args []string) error {
	name := args[0]
	c := openCatalog(cfg.Synthesize)
	locs := c.Locations(name)
	if len(locs) == 0 {
		return fmt.Errorf("theme %q not found%s", name, didYouMean(name, c.Names()))
	}

	var tmpl *engine.Engine
	if flagFormat != "" {
		e, err := engine.New(flagFormat)
		if err != nil {
			return err
		}
		tmpl = e
	}

	out := cmd.OutOrStdout()
	for i, loc := range locs {
		if tmpl != nil {
			m, err := loc.Manifest()
			if err != nil {
				continue
			}
			for _, e := range m.Directories {
				if err := tmpl.Execute(out, engine.NewDirectory(name, loc.Dir, loc.ManifestPath, e)); err != nil {
					return err
				}
			}
			continue
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		source := loc.ManifestPath
		if loc.Synthesized {
			source = "synthesized"
		}
		fmt.Fprintf(out, "%s (%s)\n", loc.Dir, source)

		m, err := loc.Manifest()
		if err != nil {
			fmt.Fprintf(out, "  unusable: %v\n", err)
			continue
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, e := range m.Directories {
			lo, hi := e.SizeRange()
			fmt.Fprintf(w, "  %s\t%s\tsize %d\tscale %d\t%d-%d\n", e.Name, e.Kind, e.Size, e.Scale, lo, hi)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		m, err := manifest.LoadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed = true
			continue
		}
		for _, p := range m.Problems {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, p)
			failed = true
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
