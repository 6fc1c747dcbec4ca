// Package config loads the registry of charm applications a host deployment
// trusts: for each application, the tag, the 32-byte identity and the
// verification key of the contract that enforces its rules.
package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"liquidnation/charm"
)

// AppEntry describes one registered application in the TOML registry.
type AppEntry struct {
	Name     string `toml:"Name"`
	Tag      string `toml:"Tag"`
	Identity string `toml:"Identity"`
	VK       string `toml:"VK"`
}

// Registry is the root of the registry file: a list of [[App]] blocks.
type Registry struct {
	Apps []AppEntry `toml:"App"`
}

// Load reads and validates a registry file. Unknown keys are rejected so a
// misspelled field cannot silently drop an application.
func Load(path string) (*Registry, error) {
	reg := &Registry{}
	meta, err := toml.DecodeFile(path, reg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: %s contains unknown key %q", path, undecoded[0].String())
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Validate checks every entry for a known tag, a well-formed identity and
// verification key, and global identity uniqueness.
func (r *Registry) Validate() error {
	seen := make(map[charm.AppKey]struct{}, len(r.Apps))
	for i, entry := range r.Apps {
		app, err := entry.App()
		if err != nil {
			return fmt.Errorf("config: app %d (%s): %w", i, entry.Name, err)
		}
		key := app.Key()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("config: app %d (%s): duplicate identity %s", i, entry.Name, app)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// App converts the textual entry into a charm.App value.
func (e AppEntry) App() (charm.App, error) {
	tag := strings.TrimSpace(e.Tag)
	if len(tag) != 1 {
		return charm.App{}, fmt.Errorf("tag must be a single character, got %q", e.Tag)
	}
	switch tag[0] {
	case charm.TagNFT, charm.TagToken:
	default:
		return charm.App{}, fmt.Errorf("unknown tag %q", tag)
	}
	identity, err := charm.ParseB32(e.Identity)
	if err != nil {
		return charm.App{}, fmt.Errorf("identity: %w", err)
	}
	vk, err := hex.DecodeString(strings.TrimSpace(e.VK))
	if err != nil {
		return charm.App{}, fmt.Errorf("verification key: %w", err)
	}
	if len(vk) == 0 {
		return charm.App{}, fmt.Errorf("verification key must not be empty")
	}
	return charm.App{Tag: tag[0], Identity: identity, VK: vk}, nil
}
