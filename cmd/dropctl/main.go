package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	dropio "github.com/leca/dropio-go"
)

const usage = `usage: dropctl <command> [flags]

commands:
  create    create a new drop
  show      show a drop
  assets    list a drop's assets
  upload    upload a file into a drop
  link      add a link asset
  note      add a note asset
  download  download an asset's original file
  destroy   delete a drop

Credentials come from DROPIO_API_KEY and DROPIO_API_SECRET.`

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := dropio.ConfigFromEnv()
	if cfg.APIKey == "" {
		slog.Error("DROPIO_API_KEY is not set")
		os.Exit(1)
	}
	client := dropio.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(ctx, client, os.Args[2:])
	case "show":
		err = runShow(ctx, client, os.Args[2:])
	case "assets":
		err = runAssets(ctx, client, os.Args[2:])
	case "upload":
		err = runUpload(ctx, client, os.Args[2:])
	case "link":
		err = runLink(ctx, client, os.Args[2:])
	case "note":
		err = runNote(ctx, client, os.Args[2:])
	case "download":
		err = runDownload(ctx, client, os.Args[2:])
	case "destroy":
		err = runDestroy(ctx, client, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runCreate(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "drop name (server generates one when empty)")
	guestsAdd := fs.Bool("guests-can-add", true, "allow guests to add assets")
	guestsComment := fs.Bool("guests-can-comment", true, "allow guests to comment")
	guestsDelete := fs.Bool("guests-can-delete", false, "allow guests to delete assets")
	fs.Parse(args)

	d, err := client.CreateDrop(ctx, dropio.CreateDropRequest{
		Name:             *name,
		GuestsCanAdd:     *guestsAdd,
		GuestsCanComment: *guestsComment,
		GuestsCanDelete:  *guestsDelete,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created drop %s\n", d.Name)
	fmt.Printf("  admin token: %s\n", d.AdminToken)
	fmt.Printf("  guest token: %s\n", d.GuestToken)
	fmt.Printf("  url:         %s\n", client.SignedDropURL(d))
	return nil
}

func runShow(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	fs.Parse(args)

	d, err := client.FindDrop(ctx, *name)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d assets, %d/%d bytes, expires %s\n",
		d.Name, d.AssetCount, d.CurrentBytes, d.MaxBytes, d.ExpiresAt.Format(time.RFC3339))
	return nil
}

func runAssets(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("assets", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	page := fs.Int("page", 1, "result page")
	fs.Parse(args)

	assets, err := client.ListAssets(ctx, *name, *page, dropio.Oldest)
	if err != nil {
		return err
	}
	for _, a := range assets {
		fmt.Printf("%s  %-8s  %s\n", a.ID, a.Type, a.Name)
	}
	return nil
}

func runUpload(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	path := fs.String("file", "", "file to upload")
	description := fs.String("description", "", "asset description")
	fs.Parse(args)

	opts := &dropio.FileOptions{Description: *description}
	a, err := client.AddFile(ctx, *name, *path, opts, func(transferred, total int64, final bool) {
		if final {
			fmt.Fprintf(os.Stderr, "\rsent %d/%d bytes\n", transferred, total)
			return
		}
		fmt.Fprintf(os.Stderr, "\rsent %d/%d bytes", transferred, total)
	})
	if err != nil {
		return err
	}
	fmt.Printf("uploaded asset %s (%s)\n", a.ID, a.Type)
	return nil
}

func runLink(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("link", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	title := fs.String("title", "", "link title")
	url := fs.String("url", "", "link target")
	fs.Parse(args)

	a, err := client.CreateLink(ctx, *name, *title, "", *url)
	if err != nil {
		return err
	}
	fmt.Printf("created link asset %s\n", a.ID)
	return nil
}

func runNote(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("note", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	title := fs.String("title", "", "note title")
	contents := fs.String("contents", "", "note contents")
	fs.Parse(args)

	a, err := client.CreateNote(ctx, *name, *title, *contents, "")
	if err != nil {
		return err
	}
	fmt.Printf("created note asset %s\n", a.ID)
	return nil
}

func runDownload(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	assetID := fs.String("asset", "", "asset id")
	out := fs.String("out", "", "destination file")
	fs.Parse(args)

	err := client.DownloadOriginal(ctx, *name, *assetID, *out, func(transferred, total int64, final bool) {
		if final {
			fmt.Fprintf(os.Stderr, "\rreceived %d bytes\n", transferred)
		}
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", *out)
	return nil
}

func runDestroy(ctx context.Context, client *dropio.Client, args []string) error {
	fs := flag.NewFlagSet("destroy", flag.ExitOnError)
	name := fs.String("drop", "", "drop name")
	fs.Parse(args)

	if err := client.DestroyDrop(ctx, *name); err != nil {
		return err
	}
	fmt.Printf("destroyed drop %s\n", *name)
	return nil
}
