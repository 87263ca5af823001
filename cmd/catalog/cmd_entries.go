package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/model"
)

// scrapeCmd prints the metadata of an album page
var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extract artist, album and artwork URL from a Bandcamp page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		info, err := mgr.Scrape(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, info)
	},
}

var (
	addGenre       string
	addArtist      string
	addAlbum       string
	addLink        string
	addJPG         string
	addWebP        string
	addDiscography bool
)

// addCmd adds an album, either scraped from a URL or from flags
var addCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Add an album to a genre section",
	Long: `Add an album to a genre section.

With a Bandcamp URL the page is scraped, the artwork is downloaded and
converted, and the album is appended to the section. With --discography the
URL is an artist page and every album it lists is imported. Without a URL the
entry is built from --artist, --album, --link and the artwork flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		if addDiscography {
			if len(args) != 1 {
				return fmt.Errorf("--discography needs an artist URL")
			}
			added, err := mgr.ImportDiscography(ctx, args[0], addGenre)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d album(s) to %s\n", len(added), addGenre)
			return nil
		}

		var entry model.Entry
		if len(args) == 1 {
			entry, err = mgr.ImportURL(ctx, args[0], addGenre)
		} else {
			entry, err = mgr.AddEntry(ctx, addGenre, model.Entry{
				Artist:  addArtist,
				Album:   addAlbum,
				Link:    addLink,
				Artwork: model.Artwork{JPEG: addJPG, WebP: addWebP},
			})
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (id %s)\n", entry.Label(), addGenre, entry.ID)
		return nil
	},
}

var (
	importGenre string
	importLink  string
)

// importMP3Cmd adds the album an MP3 file belongs to
var importMP3Cmd = &cobra.Command{
	Use:   "import-mp3 <file>",
	Short: "Add an album from the ID3 tags of an MP3 file",
	Long: `Add an album from the ID3 tags of an MP3 file.

Artist and album come from the TPE2/TPE1 and TALB frames; the embedded front
cover, if any, is converted like downloaded artwork.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		entry, err := mgr.ImportTags(ctx, args[0], importGenre, importLink)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (id %s)\n", entry.Label(), importGenre, entry.ID)
		return nil
	},
}

var listJSON bool

// listCmd lists the albums of a genre
var listCmd = &cobra.Command{
	Use:   "list <genre>",
	Short: "List the albums of a genre in page order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		entries, err := mgr.ListEntries(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if listJSON {
			return printJSON(cmd, entries)
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "ARTIST", "ALBUM", "ARTWORK", "ID")
		for i, e := range entries {
			t.Row(strconv.Itoa(i), e.Artist, e.Album, e.Artwork.Primary(), e.ID)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

var editNewGenre string

// editCmd edits one album
var editCmd = &cobra.Command{
	Use:   "edit <genre> <index|id>",
	Short: "Edit an album; --to-genre moves it to another section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := model.EntryUpdate{
			Artist: changed(cmd, "artist"),
			Album:  changed(cmd, "album"),
			Link:   changed(cmd, "link"),
			JPEG:   changed(cmd, "jpg"),
			WebP:   changed(cmd, "webp"),
		}
		if upd.IsEmpty() && (editNewGenre == "" || editNewGenre == args[0]) {
			return errors.New("nothing to update")
		}

		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		entry, err := mgr.EditEntry(cmd.Context(), args[0], admin.ParseRef(args[1]), upd, editNewGenre)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", entry.Label())
		return nil
	},
}

// deleteCmd removes one album
var deleteCmd = &cobra.Command{
	Use:   "delete <genre> <index|id>",
	Short: "Remove an album from a genre section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		entry, err := mgr.DeleteEntry(cmd.Context(), args[0], admin.ParseRef(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from %s\n", entry.Label(), args[0])
		return nil
	},
}

// sortCmd sorts every section
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort every section by artist and repack its shelves",
	Long: `Sort every section alphabetically by artist, ignoring a leading "The",
and redistribute the albums into full shelves. Sections missing from the page
are reported and skipped. Sorting a sorted page leaves it unchanged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		_, err = mgr.Sort(cmd.Context())
		return err
	},
}

// genresCmd lists the configured sections
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genre sections of the configured schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		for _, g := range mgr.Genres() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-24s %s\n", g.Key, g.Name, g.Style)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addGenre, "genre", "g", "", "Genre key (required)")
	addCmd.Flags().StringVar(&addArtist, "artist", "", "Artist name")
	addCmd.Flags().StringVar(&addAlbum, "album", "", "Album title")
	addCmd.Flags().StringVar(&addLink, "link", "", "Bandcamp URL")
	addCmd.Flags().StringVar(&addJPG, "jpg", "", "JPEG artwork file name")
	addCmd.Flags().StringVar(&addWebP, "webp", "", "WebP artwork file name")
	addCmd.Flags().BoolVar(&addDiscography, "discography", false, "Import every album of the artist")
	_ = addCmd.MarkFlagRequired("genre")

	importMP3Cmd.Flags().StringVarP(&importGenre, "genre", "g", "", "Genre key (required)")
	importMP3Cmd.Flags().StringVar(&importLink, "link", "", "Bandcamp URL of the album (required)")
	_ = importMP3Cmd.MarkFlagRequired("genre")
	_ = importMP3Cmd.MarkFlagRequired("link")

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON")

	editCmd.Flags().String("artist", "", "New artist name")
	editCmd.Flags().String("album", "", "New album title")
	editCmd.Flags().String("link", "", "New Bandcamp URL")
	editCmd.Flags().String("jpg", "", "New JPEG artwork file name")
	editCmd.Flags().String("webp", "", "New WebP artwork file name")
	editCmd.Flags().StringVar(&editNewGenre, "to-genre", "", "Move the album to this genre")
}

// changed returns the flag value when it was set on the command line.
func changed(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
