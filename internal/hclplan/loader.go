// Package hclplan is the HCL front end for teardown plans. It discovers .hcl
// files across the configured paths and translates class/method/declaration
// blocks into the format-agnostic plan model.
package hclplan

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/scopedown/internal/ctxlog"
	"github.com/vk/scopedown/internal/fsutil"
	"github.com/vk/scopedown/internal/plan"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Loader parses HCL teardown plans.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of any plan file.
type fileRoot struct {
	Classes []*classBlock `hcl:"class,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

type classBlock struct {
	Name    string         `hcl:"name,label"`
	Fields  []*declBlock   `hcl:"field,block"`
	Methods []*methodBlock `hcl:"method,block"`
}

type methodBlock struct {
	Name   string       `hcl:"name,label"`
	Params []*declBlock `hcl:"param,block"`
}

type declBlock struct {
	Name      string               `hcl:"name,label"`
	Type      string               `hcl:"type"`
	Qualifier string               `hcl:"qualifier,optional"`
	Options   map[string]cty.Value `hcl:"options,optional"`
	Deferred  bool                 `hcl:"deferred,optional"`
}

// Load parses every .hcl file reachable from the given paths and merges the
// discovered classes into one plan. Class declaration order within a file is
// preserved; files are visited in discovery order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL plan loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered plan files.", "count", len(files))

	loaded := &plan.Plan{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plan file %s: %w", file, diags)
		}

		for _, class := range root.Classes {
			translated, err := translateClass(class)
			if err != nil {
				return nil, fmt.Errorf("plan file %s: %w", file, err)
			}
			loaded.Classes = append(loaded.Classes, translated)
		}
	}

	logger.Debug("HCL plan loading complete.", "classes", len(loaded.Classes))
	return loaded, nil
}

func translateClass(block *classBlock) (*plan.Class, error) {
	class := &plan.Class{Name: block.Name}

	for _, field := range block.Fields {
		decl, err := translateDecl(field)
		if err != nil {
			return nil, fmt.Errorf("class '%s': %w", block.Name, err)
		}
		class.Fields = append(class.Fields, decl)
	}

	for _, method := range block.Methods {
		translated := &plan.Method{Name: method.Name}
		for _, param := range method.Params {
			decl, err := translateDecl(param)
			if err != nil {
				return nil, fmt.Errorf("class '%s', method '%s': %w", block.Name, method.Name, err)
			}
			translated.Params = append(translated.Params, decl)
		}
		class.Methods = append(class.Methods, translated)
	}

	return class, nil
}

func translateDecl(block *declBlock) (*plan.Declaration, error) {
	if block.Type == "" {
		return nil, fmt.Errorf("declaration '%s' is missing a resource type", block.Name)
	}

	// Option values may be written as any string-convertible cty type, e.g.
	// a bare number for a port.
	var opts map[string]string
	if len(block.Options) > 0 {
		opts = make(map[string]string, len(block.Options))
		for name, value := range block.Options {
			if value.IsNull() {
				return nil, fmt.Errorf("declaration '%s': option '%s' must not be null", block.Name, name)
			}
			converted, err := convert.Convert(value, cty.String)
			if err != nil {
				return nil, fmt.Errorf("declaration '%s': option '%s': %w", block.Name, name, err)
			}
			opts[name] = converted.AsString()
		}
	}

	return &plan.Declaration{
		Name:      block.Name,
		Type:      block.Type,
		Qualifier: block.Qualifier,
		Options:   opts,
		Deferred:  block.Deferred,
	}, nil
}
