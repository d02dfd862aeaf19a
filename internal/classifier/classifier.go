package classifier

import (
	"acf/localization/internal/domain"

	log "github.com/sirupsen/logrus"
)

// BucketFor returns the bucket of a field type. ok is false for types that
// get no rule: layout-only types and types outside the vocabulary.
func BucketFor(t domain.FieldType) (domain.Bucket, bool) {
	switch t {
	case domain.FieldTypeText,
		domain.FieldTypeTextarea,
		domain.FieldTypeWysiwyg:
		return domain.BucketTranslate, true
	case domain.FieldTypeNumber,
		domain.FieldTypeEmail,
		domain.FieldTypeURL,
		domain.FieldTypePassword,
		domain.FieldTypeOembed,
		domain.FieldTypeSelect,
		domain.FieldTypeCheckbox,
		domain.FieldTypeRadio,
		domain.FieldTypeChoice,
		domain.FieldTypeTrueFalse,
		domain.FieldTypeDatePicker,
		domain.FieldTypeDateTimePicker,
		domain.FieldTypeTimePicker,
		domain.FieldTypeColorPicker,
		domain.FieldTypeGoogleMap,
		domain.FieldTypeFlexible:
		return domain.BucketCopy, true
	case domain.FieldTypeUser:
		return domain.BucketSkip, true
	case domain.FieldTypeImage,
		domain.FieldTypeFile,
		domain.FieldTypePostObject,
		domain.FieldTypePageLink,
		domain.FieldTypeRelationship,
		domain.FieldTypeGallery,
		domain.FieldTypeTaxonomy:
		return domain.BucketLocalize, true
	case domain.FieldTypeRepeater,
		domain.FieldTypeMessage,
		domain.FieldTypeTab,
		domain.FieldTypeUnknown:
		return "", false
	default:
		return "", false
	}
}

// Classify sorts the field keys of defs into buckets, in key order.
// Unknown field types are logged and left out.
func Classify(defs domain.DefinitionSet) domain.Buckets {
	var buckets domain.Buckets

	for _, key := range defs.Keys() {
		def := defs[key]
		if def.IsGroup() {
			continue
		}

		if def.Type == domain.FieldTypeUnknown {
			log.Debugf("Got unknown type: %s", def.RawType)
			continue
		}

		if bucket, ok := BucketFor(def.Type); ok {
			buckets.Add(bucket, key)
		}
	}

	return buckets
}
