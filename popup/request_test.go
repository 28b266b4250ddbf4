// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package popup

import (
	"testing"

	"github.com/framegrace/floatpane/config"
	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/registry"
)

func TestMergeOverwrite(t *testing.T) {
	base := Request{Width: Ptr(10), Border: Ptr(geometry.BorderSingle)}
	patch := Request{Width: Ptr(20), Title: Ptr("t")}

	got := MergeOverwrite(base, patch)
	if *got.Width != 20 || *got.Border != geometry.BorderSingle || *got.Title != "t" {
		t.Fatalf("unexpected merge %+v", got)
	}

	*got.Width = 99
	*got.Border = geometry.BorderNone
	if *patch.Width != 20 || *base.Border != geometry.BorderSingle {
		t.Fatalf("merge result aliases its inputs")
	}
}

func TestMergeDefaults(t *testing.T) {
	base := Request{Width: Ptr(10)}
	defaults := Request{Width: Ptr(40), Height: Ptr(5), Wrap: Ptr(false)}

	got := MergeDefaults(base, defaults)
	if *got.Width != 10 || *got.Height != 5 || *got.Wrap {
		t.Fatalf("unexpected merge %+v", got)
	}
	if got.Title != nil {
		t.Fatalf("unset in both inputs should stay unset")
	}
	*got.Height = 1
	if *defaults.Height != 5 {
		t.Fatalf("merge result aliases defaults")
	}
}

func TestDefaultsFromConfig(t *testing.T) {
	req := DefaultsFromConfig(config.Defaults())
	if *req.Position != geometry.EditorCenter || *req.Border != geometry.BorderRounded || *req.Theme != DefaultTheme {
		t.Fatalf("unexpected defaults %+v", req)
	}
	if *req.ZIndex != 50 || !*req.Wrap || *req.Enter {
		t.Fatalf("unexpected defaults %+v", req)
	}

	cfg := config.Overlay(config.Defaults(), config.Config{
		"popup": config.Section{"position": "bogus", "border": "double"},
	})
	req = DefaultsFromConfig(cfg)
	if *req.Position != geometry.EditorCenter || *req.Border != geometry.BorderDouble {
		t.Fatalf("unexpected overridden defaults %+v", req)
	}
}

func TestRequestFromPreset(t *testing.T) {
	p := &registry.Preset{
		Name:     "peek",
		Position: "custom",
		Relative: "cursor",
		Border:   "double",
		Row:      Ptr(1),
		Col:      Ptr(2),
		Title:    "Peek",
	}
	req, err := RequestFromPreset(p)
	if err != nil {
		t.Fatalf("RequestFromPreset: %v", err)
	}
	if *req.Position != geometry.Custom || *req.Relative != geometry.RelativeCursor || *req.Border != geometry.BorderDouble {
		t.Fatalf("unexpected request %+v", req)
	}
	if *req.Row != 1 || *req.Col != 2 || *req.Title != "Peek" || req.Theme != nil {
		t.Fatalf("unexpected request %+v", req)
	}

	*req.Row = 50
	if *p.Row != 1 {
		t.Fatalf("request aliases the preset")
	}

	if _, err := RequestFromPreset(&registry.Preset{Name: "bad"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
