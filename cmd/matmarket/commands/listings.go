package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"matmarket/internal/domain"
)

func listingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listings",
		Short: "Print all published listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := appCtx.Market.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No listings yet.")
				return nil
			}
			for i, l := range all {
				printListing(out, i+1, l)
			}
			return nil
		},
	}
}

func printListing(w io.Writer, n int, l domain.Listing) {
	fmt.Fprintf(w, "[%d] %s (%s)\n", n, l.MaterialTitle, l.Category)
	fmt.Fprintf(w, "    Quantity:  %d %s @ %.2f per %s\n", l.Quantity, l.Unit, l.PricePerUnit, l.Unit)
	fmt.Fprintf(w, "    Location:  %s\n", l.Location)
	fmt.Fprintf(w, "    Condition: %s\n", l.Condition)
	fmt.Fprintf(w, "    Contact:   %s <%s>", l.ContactName, l.ContactEmail)
	if l.ContactPhone != "" {
		fmt.Fprintf(w, " %s", l.ContactPhone)
	}
	fmt.Fprintf(w, " (prefers %s)\n", l.PreferredContact)
	fmt.Fprintf(w, "    Listed:    %s\n", l.ListingTime)
	if len(l.UploadedFiles) > 0 {
		paths := make([]string, len(l.UploadedFiles))
		for i, name := range l.UploadedFiles {
			paths[i] = name
			if uploadRoot != "" {
				paths[i] = filepath.Join(uploadRoot, name)
			}
		}
		fmt.Fprintf(w, "    Images:    %s\n", strings.Join(paths, ", "))
	}
	if l.Description != "" {
		fmt.Fprintf(w, "    %s\n", l.Description)
	}
}
