package policy

import (
	"context"
	"fmt"

	"github.com/opsfabric/warden/model/command"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Document is the serialisable registry definition loaded at startup.
type Document struct {
	SuperAdminRoles []string             `json:"superAdminRoles,omitempty" yaml:"superAdminRoles,omitempty"`
	Commands        []command.Definition `json:"commands" yaml:"commands"`
}

// LoadURL reads a YAML registry document from the supplied location. Any
// scheme supported by the afs service works (file, mem, s3, gs, ...).
func LoadURL(ctx context.Context, fs afs.Service, URL string, options ...Option) (*Registry, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("policy: failed to load %v: %w", URL, err)
	}
	return Parse(data, options...)
}

// Parse decodes a YAML registry document.
func Parse(data []byte, options ...Option) (*Registry, error) {
	document := &Document{}
	if err := yaml.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("policy: failed to decode registry document: %w", err)
	}
	if len(document.Commands) == 0 {
		return nil, fmt.Errorf("policy: registry document defines no commands")
	}
	if len(document.SuperAdminRoles) > 0 {
		options = append([]Option{WithSuperAdminRoles(document.SuperAdminRoles...)}, options...)
	}
	return New(document.Commands, options...)
}
