package rules

import (
	"acf/localization/internal/domain"

	log "github.com/sirupsen/logrus"
)

// MenuSlugRule keeps option page slugs identical across sites.
var MenuSlugRule = domain.Rule{Pattern: "menu_slug$", Action: domain.ActionCopy}

type Options struct {
	// TaxonomyFromField makes taxonomy rules reference the taxonomy
	// configured on the field instead of the generic "taxonomy" type.
	// Only local definitions carry it.
	TaxonomyFromField bool
}

// Compile turns the copy, skip and localize buckets into anchored rules, in
// that order. Translated fields get no rule: the connector translates
// unmatched text by default. Fields whose path cannot be resolved are
// logged and left out.
func Compile(buckets domain.Buckets, defs domain.DefinitionSet, opts Options) []domain.Rule {
	rules := make([]domain.Rule, 0, len(buckets.Copy)+len(buckets.Skip)+len(buckets.Localize))

	for _, key := range buckets.Copy {
		if pattern, ok := anchoredPath(key, defs); ok {
			rules = append(rules, domain.Rule{Pattern: pattern, Action: domain.ActionCopy})
		}
	}

	for _, key := range buckets.Skip {
		if pattern, ok := anchoredPath(key, defs); ok {
			rules = append(rules, domain.Rule{Pattern: pattern, Action: domain.ActionSkip})
		}
	}

	for _, key := range buckets.Localize {
		pattern, ok := anchoredPath(key, defs)
		if !ok {
			continue
		}

		def := defs[key]
		rules = append(rules, domain.Rule{
			Pattern:       pattern,
			Action:        domain.ActionLocalize,
			Value:         domain.RuleValueReference,
			Serialization: SerializationFor(def.Type),
			Type:          ReferencedTypeFor(def, opts),
		})
	}

	return rules
}

func anchoredPath(key string, defs domain.DefinitionSet) (string, bool) {
	path, err := FullPath(key, defs)
	if err != nil {
		log.Warnf("⚠️ Skipping rule for field %s: %v", key, err)
		return "", false
	}
	return "^" + path + "$", true
}

// SerializationFor returns how a localized field stores its references.
// Every reference type ACF uses is stored plainly for now.
func SerializationFor(t domain.FieldType) domain.Serialization {
	switch t {
	case domain.FieldTypeImage,
		domain.FieldTypeFile,
		domain.FieldTypePostObject,
		domain.FieldTypePageLink:
		return domain.SerializationNone
	case domain.FieldTypeRelationship,
		domain.FieldTypeGallery,
		domain.FieldTypeTaxonomy:
		// TODO: switch to array-value serialization once the connector
		// resolves references inside serialized id arrays.
		return domain.SerializationNone
	default:
		return domain.SerializationNone
	}
}

// ReferencedTypeFor returns the kind of object a localized field points to.
func ReferencedTypeFor(def domain.Definition, opts Options) domain.ReferenceType {
	switch def.Type {
	case domain.FieldTypeImage, domain.FieldTypeFile, domain.FieldTypeGallery:
		return domain.ReferenceTypeMedia
	case domain.FieldTypePostObject, domain.FieldTypePageLink, domain.FieldTypeRelationship:
		return domain.ReferenceTypePost
	case domain.FieldTypeTaxonomy:
		if opts.TaxonomyFromField && def.Taxonomy != "" {
			return domain.ReferenceType(def.Taxonomy)
		}
		return domain.ReferenceTypeTaxonomy
	default:
		return domain.ReferenceTypeNone
	}
}
