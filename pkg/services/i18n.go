package services

import (
	"slices"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// ResolveI18n merges the site-wide and collection-level i18n settings of a
// collection. A nil collection, or one without i18n, has no locales.
func ResolveI18n(site *models.CMSConfig, collection *models.Collection) models.I18nConfig {
	opts := models.I18nOptions{Structure: models.SingleFile}

	if collection != nil && collection.I18n != nil && collection.I18n.Enabled {
		if site != nil && site.I18n != nil && site.I18n.Options != nil {
			mergeI18nOptions(&opts, site.I18n.Options)
		}
		if collection.I18n.Options != nil {
			mergeI18nOptions(&opts, collection.I18n.Options)
		}
	}

	if len(opts.Locales) == 0 {
		return models.I18nConfig{
			Structure: opts.Structure,
			Locales:   []string{},
		}
	}

	locales := slices.Clone(opts.Locales)
	defaultLocale := opts.DefaultLocale
	if !slices.Contains(locales, defaultLocale) {
		defaultLocale = locales[0]
	}
	return models.I18nConfig{
		Structure:     opts.Structure,
		HasLocales:    true,
		Locales:       locales,
		DefaultLocale: defaultLocale,
	}
}

func mergeI18nOptions(dst *models.I18nOptions, src *models.I18nOptions) {
	if src.Structure != "" {
		dst.Structure = src.Structure
	}
	if src.Locales != nil {
		dst.Locales = src.Locales
	}
	if src.DefaultLocale != "" {
		dst.DefaultLocale = src.DefaultLocale
	}
}
