package domain

// FieldType is the ACF field type tag of a field definition.
type FieldType string

func (f FieldType) String() string {
	return string(f)
}

const (
	FieldTypeText           FieldType = "text"
	FieldTypeTextarea       FieldType = "textarea"
	FieldTypeWysiwyg        FieldType = "wysiwyg"
	FieldTypeNumber         FieldType = "number"
	FieldTypeEmail          FieldType = "email"
	FieldTypeURL            FieldType = "url"
	FieldTypePassword       FieldType = "password"
	FieldTypeOembed         FieldType = "oembed"
	FieldTypeSelect         FieldType = "select"
	FieldTypeCheckbox       FieldType = "checkbox"
	FieldTypeRadio          FieldType = "radio"
	FieldTypeChoice         FieldType = "choice"
	FieldTypeTrueFalse      FieldType = "true_false"
	FieldTypeDatePicker     FieldType = "date_picker"
	FieldTypeDateTimePicker FieldType = "date_time_picker"
	FieldTypeTimePicker     FieldType = "time_picker"
	FieldTypeColorPicker    FieldType = "color_picker"
	FieldTypeGoogleMap      FieldType = "google_map"
	FieldTypeFlexible       FieldType = "flexible_content"
	FieldTypeUser           FieldType = "user"
	FieldTypeImage          FieldType = "image"
	FieldTypeFile           FieldType = "file"
	FieldTypePostObject     FieldType = "post_object"
	FieldTypePageLink       FieldType = "page_link"
	FieldTypeRelationship   FieldType = "relationship"
	FieldTypeGallery        FieldType = "gallery"
	FieldTypeTaxonomy       FieldType = "taxonomy"
	FieldTypeRepeater       FieldType = "repeater"
	FieldTypeMessage        FieldType = "message"
	FieldTypeTab            FieldType = "tab"

	// FieldTypeUnknown marks a type tag outside the known vocabulary.
	// The raw tag is kept on Definition.RawType.
	FieldTypeUnknown FieldType = ""
)

// FieldTypes lists every known field type.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeWysiwyg,
	FieldTypeNumber,
	FieldTypeEmail,
	FieldTypeURL,
	FieldTypePassword,
	FieldTypeOembed,
	FieldTypeSelect,
	FieldTypeCheckbox,
	FieldTypeRadio,
	FieldTypeChoice,
	FieldTypeTrueFalse,
	FieldTypeDatePicker,
	FieldTypeDateTimePicker,
	FieldTypeTimePicker,
	FieldTypeColorPicker,
	FieldTypeGoogleMap,
	FieldTypeFlexible,
	FieldTypeUser,
	FieldTypeImage,
	FieldTypeFile,
	FieldTypePostObject,
	FieldTypePageLink,
	FieldTypeRelationship,
	FieldTypeGallery,
	FieldTypeTaxonomy,
	FieldTypeRepeater,
	FieldTypeMessage,
	FieldTypeTab,
}

var knownFieldTypes = func() map[string]FieldType {
	m := make(map[string]FieldType, len(FieldTypes))
	for _, t := range FieldTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseFieldType maps a raw ACF type tag to a FieldType. Tags outside the
// known vocabulary yield FieldTypeUnknown.
func ParseFieldType(raw string) FieldType {
	if t, ok := knownFieldTypes[raw]; ok {
		return t
	}
	return FieldTypeUnknown
}
