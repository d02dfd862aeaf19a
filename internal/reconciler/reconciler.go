package reconciler

import (
	"fmt"

	"acf/localization/internal/domain"

	log "github.com/sirupsen/logrus"
)

// OptionPageGroup is the field group ACF options page ships with. Its
// definitions disagree between code and database in every install, so its
// fields never fail verification.
const OptionPageGroup = "group_572b269b668a4"

type MismatchReason string

const (
	ReasonMissingLocal MismatchReason = "missing local definition"
	ReasonType         MismatchReason = "type differs"
	ReasonName         MismatchReason = "name differs"
	ReasonParent       MismatchReason = "parent differs"
)

// Mismatch describes a database field that has no matching local definition.
type Mismatch struct {
	Key    string
	Reason MismatchReason
	Local  domain.Definition
	DB     domain.Definition
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Key, m.Reason)
}

// Verify checks that every field stored in the database is defined locally
// with the same type, name and parent. Groups are not compared.
func Verify(local, db domain.DefinitionSet) (bool, []Mismatch) {
	mismatches := make([]Mismatch, 0)

	for _, key := range db.Keys() {
		dbDef := db[key]
		if !dbDef.IsField() {
			continue
		}

		localDef, ok := local[key]
		if !ok {
			mismatches = append(mismatches, Mismatch{Key: key, Reason: ReasonMissingLocal, DB: dbDef})
			continue
		}

		reason, differs := compareFields(localDef, dbDef)
		if !differs {
			continue
		}

		if localDef.Parent == OptionPageGroup || dbDef.Parent == OptionPageGroup {
			log.Debugf("Ignoring definition mismatch of option page field %s: %s", key, reason)
			continue
		}

		mismatches = append(mismatches, Mismatch{Key: key, Reason: reason, Local: localDef, DB: dbDef})
	}

	return len(mismatches) == 0, mismatches
}

func compareFields(local, db domain.Definition) (MismatchReason, bool) {
	switch {
	case local.RawType != db.RawType:
		return ReasonType, true
	case local.Name != db.Name:
		return ReasonName, true
	case local.Parent != db.Parent:
		return ReasonParent, true
	default:
		return "", false
	}
}
