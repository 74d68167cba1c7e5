// Command parsemenu runs a saved model reply through the menu normalizer.
//
//	parsemenu [-shape object|array] [-unit metric|us] [-v] [file]
//
// Without -unit the canonical menu is printed as JSON. With -unit it is
// printed as a plain-text recipe card using that unit system's amounts.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pageza/sousie/backend/internal/menu"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parsemenu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	shape := fs.String("shape", "object", "payload delimiters: object or array")
	unit := fs.String("unit", "", "print a text card with metric or us amounts")
	verbose := fs.Bool("v", false, "log why no menu was found")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	d, ok := menu.DelimitersFor(*shape)
	if !ok {
		fmt.Fprintf(stderr, "unknown shape %q\n", *shape)
		return 2
	}
	var u menu.Unit
	if *unit != "" {
		var err error
		if u, err = menu.ParseUnit(*unit); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	in := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		defer f.Close()
		in = f
	}
	reply, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	m, err := menu.Parse(string(reply), d)
	if err != nil {
		entry := log.WithError(err)
		if errors.Is(err, menu.ErrNoPayload) {
			entry.Debug("Reply carried no menu")
		} else {
			entry.Debug("Menu payload rejected")
		}
		fmt.Fprintln(stderr, "no menu")
		return 1
	}

	if u != "" {
		printCard(stdout, m, u)
		return 0
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	return 0
}

func printCard(w io.Writer, m *menu.Menu, u menu.Unit) {
	if m.Title != "" {
		fmt.Fprintf(w, "%s\n\n", m.Title)
	}
	for _, sec := range []struct {
		heading string
		section menu.Section
	}{
		{"Mains", menu.SectionMains},
		{"Sides", menu.SectionSides},
	} {
		dishes := m.Dishes(sec.section)
		if len(dishes) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", sec.heading)
		for _, d := range dishes {
			fmt.Fprintf(w, "  %s\n", d.Name)
			if d.Description != "" {
				fmt.Fprintf(w, "    %s\n", d.Description)
			}
			for _, ing := range d.Ingredients {
				if amount := ing.Amount(u); amount != "" {
					fmt.Fprintf(w, "    - %s %s\n", amount, ing.Item)
				} else {
					fmt.Fprintf(w, "    - %s\n", ing.Item)
				}
			}
			for i, step := range d.Steps {
				fmt.Fprintf(w, "    %d. %s\n", i+1, step)
			}
		}
		fmt.Fprintln(w)
	}
}
