// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Aditya1156/DayPilot/internal/buildconfig"
	"github.com/Aditya1156/DayPilot/internal/signing"
)

type resolutionView struct {
	State    string           `json:"state" yaml:"state"`
	Source   string           `json:"source" yaml:"source"`
	Identity signing.Identity `json:"identity" yaml:"identity"`
	Missing  []string         `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func printResolution(w io.Writer, res signing.Resolution, format string, reveal bool) error {
	id := res.Identity
	if !reveal {
		id = id.Redacted()
	}
	view := resolutionView{
		State:    res.State.String(),
		Source:   res.Source,
		Identity: id,
		Missing:  res.Missing,
	}

	if format == "text" {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "identity:\t%s\n", view.Identity.Name)
		fmt.Fprintf(tw, "origin:\t%s\n", view.Identity.Origin)
		fmt.Fprintf(tw, "state:\t%s\n", view.State)
		fmt.Fprintf(tw, "source:\t%s\n", view.Source)
		fmt.Fprintf(tw, "keyAlias:\t%s\n", view.Identity.Credentials.KeyAlias)
		fmt.Fprintf(tw, "storeFile:\t%s\n", view.Identity.Credentials.StoreFile)
		fmt.Fprintf(tw, "keyPassword:\t%s\n", view.Identity.Credentials.KeyPassword)
		fmt.Fprintf(tw, "storePassword:\t%s\n", view.Identity.Credentials.StorePassword)
		if len(view.Missing) > 0 {
			fmt.Fprintf(tw, "missing:\t%s\n", strings.Join(view.Missing, ", "))
		}
		return tw.Flush()
	}

	f, err := buildconfig.ParseFormat(format)
	if err != nil {
		return err
	}
	return buildconfig.Encode(w, view, f)
}
