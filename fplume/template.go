// Copyright 2025 Sonic Labs
// This file is part of Tephra, a Monte Carlo driver for volcanic plume models
//
// Tephra is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tephra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tephra. If not, see <http://www.gnu.org/licenses/>.

package fplume

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/template"
	"text/template/parse"

	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

// ErrTemplatePlaceholder is returned when a template refers to a key no vector provides.
var ErrTemplatePlaceholder = errors.New("unknown template placeholder")

// InputTemplate renders sampled vectors into FPLUME input files.
// Placeholders are written as {{.Name}}.
type InputTemplate struct {
	tmpl         *template.Template
	placeholders []string
}

// LoadInputTemplate reads and validates the template at path against the given keys.
func LoadInputTemplate(path string, keys []string) (*InputTemplate, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrMissingArtifact, "input template %v does not exist", path)
		}
		return nil, err
	}
	return ParseInputTemplate(filepath.Base(path), string(text), keys)
}

// ParseInputTemplate parses text and checks that every placeholder is one of keys.
func ParseInputTemplate(name, text string, keys []string) (*InputTemplate, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse input template %v", name)
	}

	found := map[string]struct{}{}
	if tmpl.Tree != nil {
		collectPlaceholders(tmpl.Tree.Root, found)
	}
	known := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		known[key] = struct{}{}
	}
	var unknown []string
	for placeholder := range found {
		if _, ok := known[placeholder]; !ok {
			unknown = append(unknown, placeholder)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.Wrapf(ErrTemplatePlaceholder, "%v refers to %v; available keys are %v", name, unknown, keys)
	}

	placeholders := maps.Keys(found)
	sort.Strings(placeholders)
	return &InputTemplate{tmpl: tmpl, placeholders: placeholders}, nil
}

// Placeholders returns the sorted keys the template refers to.
func (t *InputTemplate) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// Unused returns the keys the template never refers to.
func (t *InputTemplate) Unused(keys []string) []string {
	used := make(map[string]struct{}, len(t.placeholders))
	for _, p := range t.placeholders {
		used[p] = struct{}{}
	}
	var unused []string
	for _, key := range keys {
		if _, ok := used[key]; !ok {
			unused = append(unused, key)
		}
	}
	return unused
}

// Render writes the input file of one trial.
func (t *InputTemplate) Render(w io.Writer, v montecarlo.Vector) error {
	return t.tmpl.Execute(w, v.TemplateData())
}

// RenderFile writes the input file of one trial to path.
func (t *InputTemplate) RenderFile(path string, v montecarlo.Vector) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = errors.CombineErrors(err, cerr)
		}
	}()
	if err := t.Render(file, v); err != nil {
		return errors.Wrapf(err, "cannot render %v", path)
	}
	return nil
}

// collectPlaceholders records the first identifier of every field reached
// through the template's own dot. Bodies of range and with rebind the dot and are skipped.
func collectPlaceholders(node parse.Node, into map[string]struct{}) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectPlaceholders(child, into)
		}
	case *parse.ActionNode:
		collectPlaceholders(n.Pipe, into)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectPlaceholders(cmd, into)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectPlaceholders(arg, into)
		}
	case *parse.FieldNode:
		into[n.Ident[0]] = struct{}{}
	case *parse.ChainNode:
		collectPlaceholders(n.Node, into)
	case *parse.IfNode:
		collectPlaceholders(n.Pipe, into)
		collectPlaceholders(n.List, into)
		collectPlaceholders(n.ElseList, into)
	case *parse.RangeNode:
		collectPlaceholders(n.Pipe, into)
		collectPlaceholders(n.ElseList, into)
	case *parse.WithNode:
		collectPlaceholders(n.Pipe, into)
		collectPlaceholders(n.ElseList, into)
	case *parse.TemplateNode:
		collectPlaceholders(n.Pipe, into)
	}
}
