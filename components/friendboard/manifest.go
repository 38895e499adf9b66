package friendboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	seedManifestVersionV1 = "1"
	// SeedManifestVersion exposes the current manifest format version for tooling.
	SeedManifestVersion = seedManifestVersionV1
)

// SeedManifest is a YAML/JSON document declaring friends and their starter
// widgets, used to provision a dashboard from config.
type SeedManifest struct {
	Version string       `json:"version" yaml:"version"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Friends []SeedFriend `json:"friends" yaml:"friends"`
	Source  string       `json:"-" yaml:"-"`
}

// SeedFriend describes one friend entry within a manifest.
type SeedFriend struct {
	DisplayName string         `json:"display_name" yaml:"display_name"`
	Slug        string         `json:"slug,omitempty" yaml:"slug,omitempty"`
	Theme       map[string]any `json:"theme,omitempty" yaml:"theme,omitempty"`
	Bio         string         `json:"bio,omitempty" yaml:"bio,omitempty"`
	Widgets     []SeedWidget   `json:"widgets,omitempty" yaml:"widgets,omitempty"`
}

// SeedWidget describes one starter widget placement.
type SeedWidget struct {
	Type   WidgetTypeID   `json:"type" yaml:"type"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ReadSeedManifest loads a manifest file from disk.
func ReadSeedManifest(path string) (*SeedManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("friendboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeSeedManifest(f)
	if err != nil {
		return nil, fmt.Errorf("friendboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeSeedManifest reads a manifest from any reader.
func DecodeSeedManifest(r io.Reader) (*SeedManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc SeedManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("friendboard: manifest is empty")
		}
		return nil, fmt.Errorf("friendboard: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = seedManifestVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields and references only
// catalog widget types.
func (doc *SeedManifest) Validate() error {
	if doc.Version != seedManifestVersionV1 {
		return fmt.Errorf("friendboard: unsupported manifest version %q", doc.Version)
	}
	registry := NewTypeRegistry()
	seen := make(map[string]struct{}, len(doc.Friends))
	for idx, friend := range doc.Friends {
		if friend.DisplayName == "" {
			return fmt.Errorf("friendboard: manifest friend at index %d is missing display_name", idx)
		}
		key := friend.Slug
		if key == "" {
			key = friend.DisplayName
		}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("friendboard: manifest duplicates friend %s", key)
		}
		seen[key] = struct{}{}
		for _, widget := range friend.Widgets {
			if _, ok := registry.Descriptor(widget.Type); !ok {
				return fmt.Errorf("friendboard: manifest friend %s references unknown widget type %q", key, widget.Type)
			}
		}
	}
	return nil
}

// ApplySeed provisions every friend in the manifest together with their
// starter widgets and bio. Friends whose slug already exists are skipped;
// widget errors are joined so one bad entry does not abort the rest.
func (s *Service) ApplySeed(ctx context.Context, session Session, doc *SeedManifest) error {
	if doc == nil {
		return fmt.Errorf("friendboard: seed manifest is nil")
	}
	var seedErr error
	for _, entry := range doc.Friends {
		friend, err := s.CreateFriend(ctx, session, CreateFriendRequest{
			DisplayName: entry.DisplayName,
			Slug:        entry.Slug,
			Theme:       entry.Theme,
		})
		if err != nil {
			seedErr = errors.Join(seedErr, err)
			continue
		}
		if entry.Bio != "" {
			if _, err := s.AddContent(ctx, session, friend.ID, ContentBio, entry.Bio); err != nil {
				seedErr = errors.Join(seedErr, err)
			}
		}
		for _, widget := range entry.Widgets {
			if _, err := s.CreateWidget(ctx, session, friend.ID, widget.Type, widget.Config); err != nil {
				seedErr = errors.Join(seedErr, err)
			}
		}
	}
	return seedErr
}
