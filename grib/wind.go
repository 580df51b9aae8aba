package grib

import (
	"bytes"
	"encoding/binary"
)

// Section numbers and parameter codes from the GRIB2 specification.
const (
	productDefinitionSection = 4

	// Parameter category 2 is "Momentum"; within it parameter 2 is the
	// u-component of wind (UGRD) and parameter 3 the v-component (VGRD).
	categoryMomentum = 2
	parameterUGRD    = 2
	parameterVGRD    = 3
)

// sectionHeaderLength covers the 4-byte section length plus the 1-byte
// section number that begin every section after the indicator.
const sectionHeaderLength = 5

// IsWindMessage reports whether the message contains a wind component
// variable (UGRD or VGRD). It walks the message's sections looking for
// a Product Definition Section declaring the momentum category with a
// u or v wind parameter number. A message whose section structure
// cannot be walked is reported as not wind; no error is produced.
func IsWindMessage(message Message) bool {
	if len(message) < indicatorLength || !bytes.HasPrefix(message, gribMagic) {
		return false
	}
	// Sections follow the 16-byte indicator. A GRIB2 message may repeat
	// sections 2 through 7 for additional submessages, so every product
	// definition section is inspected.
	offset := indicatorLength
	for offset+len(endMarker) <= len(message) {
		if bytes.Equal(message[offset:offset+len(endMarker)], endMarker) {
			return false
		}
		if offset+sectionHeaderLength > len(message) {
			return false
		}
		sectionLength := int(binary.BigEndian.Uint32(message[offset : offset+4]))
		sectionNumber := message[offset+4]
		if sectionLength < sectionHeaderLength || offset+sectionLength > len(message) {
			return false
		}
		if sectionNumber == productDefinitionSection && sectionLength >= 11 {
			// Octet 10 of the section is the parameter category and
			// octet 11 the parameter number (1-based octet numbering).
			category := message[offset+9]
			parameter := message[offset+10]
			if category == categoryMomentum && (parameter == parameterUGRD || parameter == parameterVGRD) {
				return true
			}
		}
		offset += sectionLength
	}
	return false
}
