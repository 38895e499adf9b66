package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
	"github.com/goliatone/go-friendboard/pkg/sqlitestore"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Add a friend entry to a seed manifest."`
	Apply    applyCmd    `cmd:"" help:"Provision a sqlite database from a seed manifest."`
	Types    typesCmd    `cmd:"" help:"List the widget catalog."`
}

type scaffoldCmd struct {
	Name         string   `required:"" help:"Display name for the friend."`
	Slug         string   `help:"Page slug (defaults to a kebab-case form of the name)."`
	Bio          string   `help:"Short bio paragraph recorded in the manifest."`
	Widget       []string `help:"Starter widget types (use multiple --widget flags)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the seed manifest YAML file to update."`
	Overwrite    bool     `help:"Replace an existing entry with the same slug."`
}

type applyCmd struct {
	ManifestPath string `required:"" type:"path" help:"Path to the seed manifest YAML file."`
	DB           string `default:"friendboard.db" type:"path" help:"Path to the sqlite database file."`
	Verbose      bool   `help:"Log each provisioning step."`
}

type typesCmd struct{}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Friend dashboard provisioning utility."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	slug := cmd.Slug
	if slug == "" {
		slug = strcase.ToKebab(cmd.Name)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("friendctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	registry := friendboard.NewTypeRegistry()
	widgets := make([]friendboard.SeedWidget, 0, len(cmd.Widget))
	for _, raw := range cmd.Widget {
		typeID := friendboard.WidgetTypeID(strings.TrimSpace(raw))
		if _, ok := registry.Descriptor(typeID); !ok {
			return fmt.Errorf("friendctl: unknown widget type %q (run 'friendctl types' for the catalog)", raw)
		}
		widgets = append(widgets, friendboard.SeedWidget{Type: typeID})
	}

	entry := friendboard.SeedFriend{
		DisplayName: cmd.Name,
		Slug:        slug,
		Bio:         cmd.Bio,
		Widgets:     widgets,
	}

	replaced := false
	for idx := range doc.Friends {
		if doc.Friends[idx].Slug == slug {
			if !cmd.Overwrite {
				return fmt.Errorf("friendctl: manifest already defines friend %s (use --overwrite to replace)", slug)
			}
			doc.Friends[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Friends = append(doc.Friends, entry)
	}

	sort.Slice(doc.Friends, func(i, j int) bool {
		return doc.Friends[i].Slug < doc.Friends[j].Slug
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s (%s) to %s\n", cmd.Name, slug, manifestPath)
	return nil
}

func (cmd *applyCmd) Run(ctx context.Context) error {
	level := zerolog.WarnLevel
	if cmd.Verbose {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	doc, err := friendboard.ReadSeedManifest(cmd.ManifestPath)
	if err != nil {
		return err
	}

	db, err := sqlitestore.Open(cmd.DB)
	if err != nil {
		return fmt.Errorf("friendctl: open database %s: %w", cmd.DB, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("friendctl: access database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlitestore.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("friendctl: migrate database: %w", err)
	}
	store := sqlitestore.New(db, log)

	service := friendboard.NewService(friendboard.Options{
		Store: friendboard.NewInstanceStore(friendboard.StoreOptions{
			Provider:  store,
			Validator: friendboard.NewSchemaValidator(),
		}),
		Friends: friendboard.NewFriendManager(friendboard.FriendManagerOptions{
			Friends: store,
			Content: store,
		}),
		Content: friendboard.NewContentManager(friendboard.ContentManagerOptions{
			Content: store,
		}),
	})

	session := friendboard.Session{Identity: friendboard.IdentityAdmin, Mode: friendboard.ModeEdit}
	if err := service.ApplySeed(ctx, session, doc); err != nil {
		return fmt.Errorf("friendctl: apply manifest: %w", err)
	}

	friends, err := service.Friends(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("friends", len(friends)).Str("db", cmd.DB).Msg("seed applied")
	fmt.Fprintf(os.Stdout, "✓ Applied %s: %d friend(s) in %s\n", cmd.ManifestPath, len(friends), cmd.DB)
	return nil
}

func (cmd *typesCmd) Run(_ context.Context) error {
	for _, desc := range friendboard.DefaultTypeDescriptors() {
		multi := "single"
		if desc.AllowsMultiple {
			multi = "multiple"
		}
		fmt.Fprintf(os.Stdout, "%-18s %-10s %s\n", desc.ID, multi, desc.Description)
	}
	return nil
}

func loadOrInitManifest(path string) (*friendboard.SeedManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &friendboard.SeedManifest{
				Version: friendboard.SeedManifestVersion,
				Friends: []friendboard.SeedFriend{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("friendctl: stat manifest: %w", err)
	}
	return friendboard.ReadSeedManifest(path)
}

func writeManifest(path string, doc *friendboard.SeedManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("friendctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("friendctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("friendctl: write manifest: %w", err)
	}
	return nil
}
