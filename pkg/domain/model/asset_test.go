package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/storeget/pkg/domain/model"
)

func TestAsset_FamilyConsistency(t *testing.T) {
	uwp := model.NewUWPAsset("App_x64.msixbundle", "x64", "msixbundle", "https://cdn.example.com/app", "2024-01-01")
	gt.NoError(t, uwp.Validate())
	gt.Value(t, uwp.Family).Equal(model.FamilyUWP)
	gt.Value(t, uwp.Modified).Equal("2024-01-01")
	gt.Value(t, uwp.Locale).Equal("")

	classic := model.NewClassicAsset("setup.exe", "x64", "exe", "https://cdn.example.com/setup", "en-US")
	gt.NoError(t, classic.Validate())
	gt.Value(t, classic.Family).Equal(model.FamilyClassic)
	gt.Value(t, classic.Locale).Equal("en-US")
	gt.Value(t, classic.Modified).Equal("")
}

func TestAsset_LocaleSentinel(t *testing.T) {
	asset := model.NewClassicAsset("setup.exe", "x64", "exe", "https://cdn.example.com/setup", "")
	gt.Value(t, asset.Locale).Equal(model.LocaleUnknown)
	gt.NoError(t, asset.Validate())
}

func TestAsset_Validate_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		asset model.Asset
	}{
		{
			name:  "missing name",
			asset: model.NewUWPAsset("", "x64", "msix", "https://cdn.example.com/a", ""),
		},
		{
			name:  "missing arch",
			asset: model.NewUWPAsset("a.msix", "", "msix", "https://cdn.example.com/a", ""),
		},
		{
			name:  "missing download URL",
			asset: model.NewUWPAsset("a.msix", "x64", "msix", "", ""),
		},
		{
			name: "UWP asset carrying a locale",
			asset: model.Asset{
				Name: "a.msix", Arch: "x64", DownloadURL: "https://cdn.example.com/a",
				Family: model.FamilyUWP, Locale: "en-US",
			},
		},
		{
			name: "classic asset carrying a modified timestamp",
			asset: model.Asset{
				Name: "setup.exe", Arch: "x64", DownloadURL: "https://cdn.example.com/s",
				Family: model.FamilyClassic, Locale: "en-US", Modified: "2024-01-01",
			},
		},
		{
			name: "unknown family",
			asset: model.Asset{
				Name: "a", Arch: "x64", DownloadURL: "https://cdn.example.com/a",
				Family: model.Family("zip"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Error(t, tc.asset.Validate())
		})
	}
}

func TestResolutionResult_Validate(t *testing.T) {
	ok := &model.ResolutionResult{
		Family: model.FamilyUWP,
		Assets: []model.Asset{
			model.NewUWPAsset("a_x64.msix", "x64", "msix", "https://cdn.example.com/a", "2024-01-01"),
			model.NewUWPAsset("a_arm64.msix", "arm64", "msix", "https://cdn.example.com/b", "2024-01-01"),
		},
	}
	gt.NoError(t, ok.Validate())

	mixed := &model.ResolutionResult{
		Family: model.FamilyUWP,
		Assets: []model.Asset{
			model.NewUWPAsset("a_x64.msix", "x64", "msix", "https://cdn.example.com/a", "2024-01-01"),
			model.NewClassicAsset("setup.exe", "x64", "exe", "https://cdn.example.com/s", "en-US"),
		},
	}
	gt.Error(t, mixed.Validate())
}

func TestAsset_MetaColumn(t *testing.T) {
	uwp := model.NewUWPAsset("a.msix", "x64", "msix", "https://cdn.example.com/a", "2024-01-01")
	gt.Value(t, uwp.MetaColumn()).Equal("2024-01-01")

	classic := model.NewClassicAsset("setup.exe", "x64", "exe", "https://cdn.example.com/s", "")
	gt.Value(t, classic.MetaColumn()).Equal(model.LocaleUnknown)
}
