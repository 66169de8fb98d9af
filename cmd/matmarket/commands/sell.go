package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"matmarket/internal/domain"
	"matmarket/internal/services/listing"
)

// sell publishes one listing. Enumerated fields default to the first choice,
// as the listing form does.
func sellCmd() *cobra.Command {
	var (
		form   domain.ListingForm
		images []string
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Publish a material listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			blobs, err := readImages(images)
			if err != nil {
				return err
			}
			blobs, skipped := listing.FilterImages(blobs)
			if len(skipped) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping non-image files: %s\n", strings.Join(skipped, ", "))
			}

			l, err := appCtx.Market.Publish(cmd.Context(), form, blobs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listed %q at %s", l.MaterialTitle, l.ListingTime)
			if n := len(l.UploadedFiles); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " with %d image(s)", n)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.MaterialTitle, "title", "", "material title")
	f.StringVar(&form.Category, "category", domain.Categories[0], "one of: "+strings.Join(domain.Categories, ", "))
	f.IntVar(&form.Quantity, "quantity", 1, "available quantity")
	f.StringVar(&form.Unit, "unit", domain.Units[0], "one of: "+strings.Join(domain.Units, ", "))
	f.Float64Var(&form.PricePerUnit, "price", 0, "price per unit")
	f.StringVar(&form.Location, "location", "", "pickup location")
	f.StringVar(&form.Condition, "condition", domain.Conditions[0], "one of: "+strings.Join(domain.Conditions, ", "))
	f.StringVar(&form.Description, "description", "", "free-form description")
	f.StringVar(&form.ContactName, "contact-name", "", "seller name")
	f.StringVar(&form.ContactEmail, "contact-email", "", "seller email")
	f.StringVar(&form.ContactPhone, "contact-phone", "", "seller phone")
	f.StringVar(&form.PreferredContact, "preferred-contact", domain.ContactPreferences[0], "one of: "+strings.Join(domain.ContactPreferences, ", "))
	f.BoolVar(&form.AcceptedTerms, "accept-terms", false, "accept the listing terms")
	f.StringArrayVar(&images, "image", nil, "image file to attach (repeatable, .jpg/.jpeg/.png)")
	return cmd
}

func readImages(paths []string) ([]domain.Blob, error) {
	blobs := make([]domain.Blob, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		blobs = append(blobs, domain.Blob{Name: filepath.Base(p), Data: data})
	}
	return blobs, nil
}
