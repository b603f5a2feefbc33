package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ufmarketplace/ufmarket/internal/client/models"
)

// readFileFn is a test seam for os.ReadFile, used when attaching images.
var readFileFn = os.ReadFile

// Browse fetches and prints every other user's listings.
func (a *App) Browse(ctx context.Context) error {
	items, err := a.listings.Browse(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.items = items
	printListings(items)
	return nil
}

// Mine fetches and prints the logged-in user's own listings.
func (a *App) Mine(ctx context.Context) error {
	items, err := a.listings.Mine(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.items = items
	printListings(items)
	return nil
}

// Sell publishes a new listing. On a rejected save the draft stays around
// and the user may correct it and retry, like the web form staying open with
// an inline error.
func (a *App) Sell(ctx context.Context) error {
	return a.editLoop(ctx, models.ListingDraft{}, "Listing published!")
}

// Edit loads one of the user's listings into a draft and saves the changes.
// The price comes back as a bare decimal, without the currency marker.
func (a *App) Edit(ctx context.Context) error {
	item, err := a.pickOwn(ctx)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}
	return a.editLoop(ctx, models.DraftFromDisplay(*item), "Listing updated!")
}

// Delete removes one of the user's listings. The printed collection is the
// server's, not a local filter.
func (a *App) Delete(ctx context.Context) error {
	item, err := a.pickOwn(ctx)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	items, err := a.listings.Delete(ctx, item.ID)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.items = items
	printlnFn("Listing deleted.")
	printListings(items)
	return nil
}

// editLoop prompts for the draft fields, attempts the save, and on rejection
// offers to correct and retry with the entered values as defaults.
func (a *App) editLoop(ctx context.Context, draft models.ListingDraft, doneMsg string) error {
	for {
		d, err := a.promptDraft(draft)
		if err != nil {
			return err
		}
		draft = d

		items, err := a.listings.Save(ctx, draft)
		if err == nil {
			a.items = items
			printlnFn(doneMsg)
			printListings(items)
			return nil
		}
		printlnFn(err.Error())

		again, rerr := getSimpleText(a.reader, "Correct and retry? (y/n)", os.Stdout)
		if rerr != nil {
			return rerr
		}
		if again != "y" {
			return err
		}
	}
}

// pickOwn fetches the user's listings and prompts for an id among them.
// Returns nil with no error when there is nothing to pick or the id is
// unknown.
func (a *App) pickOwn(ctx context.Context) (*models.DisplayListing, error) {
	items, err := a.listings.Mine(ctx)
	if err != nil {
		printlnFn(err.Error())
		return nil, err
	}
	a.items = items
	if len(items) == 0 {
		printlnFn("You have no listings.")
		return nil, nil
	}
	printListings(items)

	id, err := getSimpleText(a.reader, "Enter listing id", os.Stdout)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	printlnFn("No listing with id " + id)
	return nil, nil
}

// promptDraft collects the listing fields. For every field an empty input
// keeps the default shown in brackets, so editing only the price does not
// force retyping the rest.
func (a *App) promptDraft(def models.ListingDraft) (models.ListingDraft, error) {
	d := def

	name, err := getSimpleText(a.reader, withDefault("Product name", def.Name), os.Stdout)
	if err != nil {
		return d, err
	}
	if name != "" {
		d.Name = name
	}

	desc, err := getMultiline(a.reader, withDefault("Description", def.Description), os.Stdout)
	if err != nil {
		return d, err
	}
	if desc != "" {
		d.Description = desc
	}

	price, err := getSimpleText(a.reader, withDefault("Price", def.Price), os.Stdout)
	if err != nil {
		return d, err
	}
	if price != "" {
		d.Price = price
	}

	prompt := fmt.Sprintf("Category (%s)", strings.Join(models.Categories(), ", "))
	category, err := getSimpleText(a.reader, withDefault(prompt, def.Category), os.Stdout)
	if err != nil {
		return d, err
	}
	if category != "" {
		d.Category = category
	}

	if len(d.Images) > 0 {
		keep, err := getSimpleText(a.reader,
			fmt.Sprintf("Keep current %d image(s)? (y/n)", len(d.Images)), os.Stdout)
		if err != nil {
			return d, err
		}
		if keep == "n" {
			d.Images = nil
		}
	}

	images, err := a.promptImages()
	if err != nil {
		return d, err
	}
	d.Images = append(d.Images, images...)

	return d, nil
}

// promptImages reads image file paths until an empty line and loads each one
// as a pending upload. The content type is sniffed from the bytes.
func (a *App) promptImages() ([]models.DraftImage, error) {
	var images []models.DraftImage
	for {
		path, err := getSimpleText(a.reader, "Image file to attach (empty line to finish)", os.Stdout)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return images, nil
		}

		data, err := readFileFn(path)
		if err != nil {
			printlnFn(err.Error())
			continue
		}
		images = append(images, models.DraftImage{
			Name:        filepath.Base(path),
			ContentType: http.DetectContentType(data),
			Raw:         data,
		})
	}
}

func withDefault(prompt, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, def)
}

func printListings(items []models.DisplayListing) {
	if len(items) == 0 {
		printlnFn("No listings found.")
		return
	}
	for _, it := range items {
		seller := it.Seller
		if it.SellerName != "" {
			seller = fmt.Sprintf("%s <%s>", it.SellerName, it.Seller)
		}
		printlnFn(fmt.Sprintf("#%s  %s  %s  [%s]  by %s, %d image(s)",
			it.ID, it.Name, it.Price, it.Category, seller, len(it.Images)))
	}
}
