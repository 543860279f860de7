// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
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

package color

import (
	"fmt"

	"github.com/dcoder/pdfcontent"
)

// Resolve looks up name, first in the predefined table, then as an
// array-form color space entry of csDict (the page's Resources/ColorSpace
// dictionary). r is used to resolve indirect references appearing inside
// the array.
//
// Unrecognised color space arrays fall back to DeviceGray with an error
// describing what was unrecognised; callers following the documented recovery
// discipline log the error and use the returned (always non-nil) Space.
func Resolve(r pdf.Getter, name pdf.Name, csDict pdf.Dict) (*Space, error) {
	if sp, ok := Predefined[string(name)]; ok {
		return sp, nil
	}

	entry, ok := csDict[name]
	if !ok {
		return DeviceGray, fmt.Errorf("color space %q not found", name)
	}
	return resolveArray(r, entry)
}

func resolveArray(r pdf.Getter, obj pdf.Object) (*Space, error) {
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return DeviceGray, err
	}

	if nm, ok := resolved.(pdf.Name); ok {
		if sp, ok := Predefined[string(nm)]; ok {
			return sp, nil
		}
		return DeviceGray, fmt.Errorf("unknown color space name %q", nm)
	}

	arr, ok := resolved.(pdf.Array)
	if !ok || len(arr) == 0 {
		return DeviceGray, fmt.Errorf("expected color space array, got %T", resolved)
	}

	family, err := pdf.GetName(r, arr[0])
	if err != nil {
		return DeviceGray, err
	}

	switch family {
	case "ICCBased":
		// The underlying stream's /N entry gives the component count; a
		// malformed or inaccessible stream falls back to DeviceGray's 1.
		n := 1
		if len(arr) > 1 {
			if stm, err := pdf.GetStream(r, arr[1]); err == nil && stm != nil {
				if ni, err := pdf.GetInteger(r, stm.Dict["N"]); err == nil && ni > 0 {
					n = int(ni)
				}
			}
		}
		switch n {
		case 3:
			return &Space{Name: "ICCBased", Kind: KindICCBased, NumComps: 3}, nil
		case 4:
			return &Space{Name: "ICCBased", Kind: KindICCBased, NumComps: 4}, nil
		default:
			return &Space{Name: "ICCBased", Kind: KindICCBased, NumComps: 1}, nil
		}

	case "Indexed":
		if len(arr) < 2 {
			return DeviceGray, fmt.Errorf("malformed Indexed color space")
		}
		base, err := resolveArray(r, arr[1])
		if err != nil {
			base = DeviceGray
		}
		return &Space{Name: "Indexed", Kind: KindIndexed, NumComps: 1, Underlying: base}, nil

	case "Separation":
		base := DeviceGray
		if len(arr) > 2 {
			if b, err := resolveArray(r, arr[2]); err == nil {
				base = b
			}
		}
		return &Space{Name: "Separation", Kind: KindSeparation, NumComps: 1, Underlying: base}, nil

	case "DeviceN":
		n := 1
		if len(arr) > 1 {
			if names, err := pdf.GetArray(r, arr[1]); err == nil {
				n = len(names)
			}
		}
		base := DeviceGray
		if len(arr) > 2 {
			if b, err := resolveArray(r, arr[2]); err == nil {
				base = b
			}
		}
		return &Space{Name: "DeviceN", Kind: KindDeviceN, NumComps: n, Underlying: base}, nil

	case "Pattern":
		underlying := Pattern
		if len(arr) > 1 {
			if b, err := resolveArray(r, arr[1]); err == nil {
				underlying = b
			}
		}
		return &Space{Name: "Pattern", Kind: KindPattern, NumComps: 0, Underlying: underlying}, nil

	case "CalGray":
		return CalGray, nil
	case "CalRGB":
		return CalRGB, nil
	case "Lab":
		return Lab, nil

	default:
		return DeviceGray, fmt.Errorf("unrecognised color space family %q", family)
	}
}
