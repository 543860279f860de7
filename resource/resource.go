// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package resource implements the page interpreter's shared font cache,
// ColorSpace lookup, and ProcSet acknowledgement, sitting between the
// content-stream interpreter and the out-of-scope document/font-subsystem
// collaborators.
package resource

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/color"
	"github.com/dcoder/pdfcontent/font"
	"github.com/dcoder/pdfcontent/internal/diag"
)

var (
	ErrFontNotFound      = errors.New("resource: font not found")
	ErrXObjectNotFound   = errors.New("resource: xobject not found")
	ErrColorSpaceNotFound = errors.New("resource: color space not found")
)

// fontCacheKey is the indirect object id a font dictionary was resolved
// from; fonts without an id (e.g. Type0 descendants, recursed into with
// ref cleared) are never cached.
type fontCacheKey uint32

// Manager holds state shared across pages processed by the same
// interpreter configuration: the font cache (safe for concurrent use by
// multiple interpreters sharing one Manager) and the injected CMap
// database.
type Manager struct {
	// Caching controls whether GetFont caches resolved fonts by object id.
	// Default true.
	Caching bool

	CMapDB font.CMapDatabase

	mu    sync.Mutex
	cache map[fontCacheKey]font.Font
}

// NewManager returns a Manager with caching enabled.
func NewManager(cmapDB font.CMapDatabase) *Manager {
	return &Manager{
		Caching: true,
		CMapDB:  cmapDB,
		cache:   make(map[fontCacheKey]font.Font),
	}
}

// GetCMap resolves name via the injected CMapDatabase. In non-strict mode
// a lookup miss returns font.IdentityCMap instead of an error.
func (m *Manager) GetCMap(name pdf.Name, strict bool) (font.CMap, error) {
	if m.CMapDB != nil {
		if cm, ok := m.CMapDB.Get(name); ok {
			return cm, nil
		}
	}
	if strict {
		return nil, fmt.Errorf("resource: cmap %q not found", name)
	}
	return font.IdentityCMap, nil
}

var knownProcSets = map[pdf.Name]bool{
	"PDF": true, "Text": true, "ImageB": true, "ImageC": true, "ImageI": true,
}

// GetProcSet filters list down to the recognised ProcSet names; ProcSet is
// purely advisory so unrecognised entries are silently dropped rather than
// treated as an error.
func (m *Manager) GetProcSet(list pdf.Array) []pdf.Name {
	var out []pdf.Name
	for _, obj := range list {
		name, ok := obj.(pdf.Name)
		if !ok || !knownProcSets[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}

// GetFont resolves a font dictionary to a font.Font, dispatching on
// spec["Subtype"]. ref, when non-zero, is used as the cache key; Type0
// composite fonts recurse into their first descendant (resolved through r,
// since /DescendantFonts entries are almost always indirect references)
// with ref cleared (the descendant is never independently cached under its
// own id).
func (m *Manager) GetFont(r pdf.Getter, ref pdf.Reference, spec pdf.Dict) (font.Font, error) {
	if !ref.IsZero() && m.Caching {
		m.mu.Lock()
		cached, ok := m.cache[fontCacheKey(ref.Number)]
		m.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	f, err := m.resolveFont(r, ref, spec)
	if err != nil {
		diag.Warn("resource: %v, falling back to default Type1", err)
		f = font.DefaultType1()
	}

	if !ref.IsZero() && m.Caching {
		m.mu.Lock()
		m.cache[fontCacheKey(ref.Number)] = f
		m.mu.Unlock()
	}
	return f, nil
}

func (m *Manager) resolveFont(r pdf.Getter, ref pdf.Reference, spec pdf.Dict) (font.Font, error) {
	if err := font.CheckFontDict(spec); err != nil {
		return nil, err
	}

	subtype, _ := spec["Subtype"].(pdf.Name)
	switch subtype {
	case "Type1", "MMType1":
		return font.NewType1(spec)
	case "TrueType":
		return font.NewTrueType(spec)
	case "Type3":
		return font.NewType3(spec)
	case "CIDFontType0", "CIDFontType2":
		return font.NewCIDFont(spec)
	case "Type0":
		descendants, _ := spec["DescendantFonts"].(pdf.Array)
		if len(descendants) == 0 {
			return nil, &font.SpecError{Msg: "Type0 font has no DescendantFonts"}
		}
		child, err := pdf.GetDict(r, descendants[0])
		if err != nil || child == nil {
			return nil, &font.SpecError{Msg: "Type0 DescendantFonts[0] is not a dictionary"}
		}
		if _, hasEnc := child["Encoding"]; !hasEnc {
			if enc, ok := spec["Encoding"]; ok {
				child["Encoding"] = enc
			}
		}
		if _, hasTU := child["ToUnicode"]; !hasTU {
			if tu, ok := spec["ToUnicode"]; ok {
				child["ToUnicode"] = tu
			}
		}
		return m.resolveFont(r, pdf.Reference{}, child)
	default:
		return nil, &font.SpecError{Msg: fmt.Sprintf("unrecognised font Subtype %q", subtype)}
	}
}

// ColorSpace resolves name, first against the predefined table, then as an
// array-form entry of csMap (typically the page's Resources/ColorSpace
// dictionary), recovering to color.DeviceGray on anything unrecognised.
func (m *Manager) ColorSpace(r pdf.Getter, name pdf.Name, csMap pdf.Dict) (*color.Space, error) {
	sp, err := color.Resolve(r, name, csMap)
	if err != nil {
		diag.Warn("resource: %v, falling back to DeviceGray", err)
	}
	return sp, nil
}
